package interps

// Listener is notified by an interpreter as it steps.
type Listener interface {
	Started(interp *Interpreter)
	Ended(interp *Interpreter)
	SteppedForward(interp *Interpreter)
	Broke(interp *Interpreter)
}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	OnStarted        func(interp *Interpreter)
	OnEnded          func(interp *Interpreter)
	OnSteppedForward func(interp *Interpreter)
	OnBroke          func(interp *Interpreter)
}

var _ Listener = new(ListenerFuncs)

func (l *ListenerFuncs) Started(interp *Interpreter) {
	if l.OnStarted != nil {
		l.OnStarted(interp)
	}
}

func (l *ListenerFuncs) Ended(interp *Interpreter) {
	if l.OnEnded != nil {
		l.OnEnded(interp)
	}
}

func (l *ListenerFuncs) SteppedForward(interp *Interpreter) {
	if l.OnSteppedForward != nil {
		l.OnSteppedForward(interp)
	}
}

func (l *ListenerFuncs) Broke(interp *Interpreter) {
	if l.OnBroke != nil {
		l.OnBroke(interp)
	}
}
