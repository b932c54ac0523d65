package access

type Visibility string

const (
	VisibilityFull     Visibility = "full"
	VisibilityRedacted Visibility = "redacted"
)

// Reason records which rule of the decision table produced a verdict.
type Reason string

const (
	ReasonTeacherOwner    Reason = "teacher_owner"
	ReasonSubscribed      Reason = "subscribed"
	ReasonFirstModuleFree Reason = "first_module_free"
	ReasonDenied          Reason = "denied"
)

// GateDecision is recomputed per request and never persisted.
type GateDecision struct {
	Visibility Visibility
	Reason     Reason
}

func (d GateDecision) IsFull() bool {
	return d.Visibility == VisibilityFull
}
