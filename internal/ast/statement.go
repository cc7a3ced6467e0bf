package ast

// Priority is the optional urgency tag on an Action statement.
type Priority int

const (
	PriorityUnset Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityNormal:
		return "NORMAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	default:
		return ""
	}
}

// ParsePriority maps a wire token to a Priority. ok is false for anything
// other than the four defined levels.
func ParsePriority(s string) (Priority, bool) {
	switch s {
	case "LOW":
		return PriorityLow, true
	case "NORMAL":
		return PriorityNormal, true
	case "HIGH":
		return PriorityHigh, true
	case "CRITICAL":
		return PriorityCritical, true
	default:
		return PriorityUnset, false
	}
}

// Statement is the tagged union carried by a Message body. Each of the
// eleven variants below implements it as a marker; callers type-switch on
// the concrete type.
type Statement interface {
	statementTag()
}

// NamedArgs preserves insertion order for an action or event's named
// arguments, as required by the minifier (§4.2).
type NamedArgs = ObjectMap

func NewNamedArgs() *NamedArgs { return NewObjectMap() }

// ActionPolicy is the optional "P:<id>[(expr)]" clause on an Action.
type ActionPolicy struct {
	ID      string
	Expr    string // raw expression text, empty if the policy carries none
	HasExpr bool
}

type ActionStatement struct {
	Verb         string
	Args         []Value
	NamedArgs    *NamedArgs
	Policy       *ActionPolicy
	Priority     Priority
	Reason       string // free-text reason, or the raw expression text
	ReasonIsExpr bool
}

func (*ActionStatement) statementTag() {}

type QueryStatement struct {
	Expression    string
	Constraint    string // optional; empty means absent
	HasConstraint bool
}

func (*QueryStatement) statementTag() {}

type AssertStatement struct {
	Path  string
	Value Value
}

func (*AssertStatement) statementTag() {}

type ControlStatement struct {
	Condition string
	Then      Statement
	Else      Statement // nil if absent
}

func (*ControlStatement) statementTag() {}

type EventStatement struct {
	Name      string
	Args      []Value
	NamedArgs *NamedArgs
}

func (*EventStatement) statementTag() {}

type ErrorStatement struct {
	Code       string
	Message    string
	HasMessage bool
}

func (*ErrorStatement) statementTag() {}

type FoldStatement struct {
	FoldID  string
	Summary string
	State   *ObjectMap // nil if absent
}

func (*FoldStatement) statementTag() {}

type RecallStatement struct {
	FoldID string
}

func (*RecallStatement) statementTag() {}

type SubscribeStatement struct {
	Pattern   string
	Filter    string
	HasFilter bool
}

func (*SubscribeStatement) statementTag() {}

type UnsubscribeStatement struct {
	Pattern string
}

func (*UnsubscribeStatement) statementTag() {}

type KnowledgeStatement struct {
	Topic   string
	Value   Value
	Version uint64
}

func (*KnowledgeStatement) statementTag() {}

// StatementEqual performs a deep, variant-aware comparison of two
// statements, used by the parse/minify round-trip property.
func StatementEqual(a, b Statement) bool {
	switch av := a.(type) {
	case *ActionStatement:
		bv, ok := b.(*ActionStatement)
		return ok && actionEqual(av, bv)
	case *QueryStatement:
		bv, ok := b.(*QueryStatement)
		return ok && *av == *bv
	case *AssertStatement:
		bv, ok := b.(*AssertStatement)
		return ok && av.Path == bv.Path && Equal(av.Value, bv.Value)
	case *ControlStatement:
		bv, ok := b.(*ControlStatement)
		if !ok || av.Condition != bv.Condition {
			return false
		}
		if !StatementEqual(av.Then, bv.Then) {
			return false
		}
		if (av.Else == nil) != (bv.Else == nil) {
			return false
		}
		if av.Else != nil && !StatementEqual(av.Else, bv.Else) {
			return false
		}
		return true
	case *EventStatement:
		bv, ok := b.(*EventStatement)
		return ok && eventEqual(av, bv)
	case *ErrorStatement:
		bv, ok := b.(*ErrorStatement)
		return ok && *av == *bv
	case *FoldStatement:
		bv, ok := b.(*FoldStatement)
		if !ok || av.FoldID != bv.FoldID || av.Summary != bv.Summary {
			return false
		}
		return objectMapEqual(av.State, bv.State)
	case *RecallStatement:
		bv, ok := b.(*RecallStatement)
		return ok && *av == *bv
	case *SubscribeStatement:
		bv, ok := b.(*SubscribeStatement)
		return ok && *av == *bv
	case *UnsubscribeStatement:
		bv, ok := b.(*UnsubscribeStatement)
		return ok && *av == *bv
	case *KnowledgeStatement:
		bv, ok := b.(*KnowledgeStatement)
		return ok && av.Topic == bv.Topic && av.Version == bv.Version && Equal(av.Value, bv.Value)
	default:
		return false
	}
}

func actionEqual(a, b *ActionStatement) bool {
	if a.Verb != b.Verb || a.Priority != b.Priority || a.Reason != b.Reason || a.ReasonIsExpr != b.ReasonIsExpr {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	if !namedArgsEqual(a.NamedArgs, b.NamedArgs) {
		return false
	}
	if (a.Policy == nil) != (b.Policy == nil) {
		return false
	}
	if a.Policy != nil && *a.Policy != *b.Policy {
		return false
	}
	return true
}

func eventEqual(a, b *EventStatement) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return namedArgsEqual(a.NamedArgs, b.NamedArgs)
}

func namedArgsEqual(a, b *NamedArgs) bool {
	return objectMapEqual(a, b)
}

func objectMapEqual(a, b *ObjectMap) bool {
	al, bl := 0, 0
	if a != nil {
		al = a.Len()
	}
	if b != nil {
		bl = b.Len()
	}
	if al != bl {
		return false
	}
	if al == 0 {
		return true
	}
	pa, pb := a.Oldest(), b.Oldest()
	for pa != nil {
		if pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
			return false
		}
		pa, pb = pa.Next(), pb.Next()
	}
	return true
}
