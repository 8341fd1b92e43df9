// Copyright 2025 The leadscout authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package agent

// ProgressEvent reports pipeline milestones to whatever shell
// wraps the run (TUI status line, worker message stream). Events
// are advisory; the run result is returned by Run itself.
type ProgressEvent struct {
	Type ProgressEventType

	// Detail carries the search question for searching events
	// and the error message for error events.
	Detail string
}

type ProgressEventType string

const (
	ProgressEventStarted   ProgressEventType = "started"
	ProgressEventSearching ProgressEventType = "searching"
	ProgressEventComplete  ProgressEventType = "complete"
	ProgressEventError     ProgressEventType = "error"
)

func StartedEvent(company string) ProgressEvent {
	return ProgressEvent{
		Type:   ProgressEventStarted,
		Detail: company,
	}
}

func SearchingEvent(question string) ProgressEvent {
	return ProgressEvent{
		Type:   ProgressEventSearching,
		Detail: question,
	}
}

func CompleteEvent() ProgressEvent {
	return ProgressEvent{
		Type: ProgressEventComplete,
	}
}

func ErrorEvent(err error) ProgressEvent {
	return ProgressEvent{
		Type:   ProgressEventError,
		Detail: err.Error(),
	}
}
