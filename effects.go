package dragkit

import "go.uber.org/zap"

// effect toggles flags on a node picked from the session when the session
// enters a state. Effects are observable output only; no decision in the
// controller reads them back.
type effect struct {
	node  func(*Session) *Node
	flags func(*Session) NodeFlags
	set   bool
}

func elementOf(s *Session) *Node { return s.Element }
func targetOf(s *Session) *Node  { return s.Target }

func activeFlags(s *Session) NodeFlags {
	if s.Mode == ModeResize {
		return FlagResizing
	}
	return FlagDragging
}

func constFlags(f NodeFlags) func(*Session) NodeFlags {
	return func(*Session) NodeFlags { return f }
}

var transitionEffects = map[State][]effect{
	StateActive: {
		{node: elementOf, flags: activeFlags, set: true},
		{node: targetOf, flags: constFlags(FlagDropTarget), set: true},
	},
	StateIdle: {
		{node: elementOf, flags: constFlags(FlagDragging | FlagResizing | FlagInvalid | FlagRestoring), set: false},
		{node: targetOf, flags: constFlags(FlagDropTarget), set: false},
	},
}

// transition moves s to state and applies that state's side effects.
func (c *Controller) transition(s *Session, to State) {
	from := s.State
	s.State = to
	for _, e := range transitionEffects[to] {
		n := e.node(s)
		if n == nil {
			continue
		}
		if e.set {
			n.Flags |= e.flags(s)
		} else {
			n.Flags &^= e.flags(s)
		}
	}
	if ce := c.log.Check(zap.DebugLevel, "session transition"); ce != nil {
		ce.Write(append(s.fields(), zap.Stringer("from", from))...)
	}
}

// retarget moves the drop-target flag from the previous target to n.
func (s *Session) retarget(n *Node) {
	if s.Target == n {
		return
	}
	if s.Target != nil {
		s.Target.Flags &^= FlagDropTarget
	}
	s.Target = n
	if n != nil && s.State == StateActive {
		n.Flags |= FlagDropTarget
	}
}

// syncValidity mirrors Session.Valid onto the element's invalid flag.
func syncValidity(s *Session) {
	if s.Element == nil {
		return
	}
	if s.Valid {
		s.Element.Flags &^= FlagInvalid
	} else {
		s.Element.Flags |= FlagInvalid
	}
}
