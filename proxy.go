package dragkit

import "go.uber.org/zap"

// proxyManager owns the stand-in nodes of sessions. A proxy belongs to
// exactly one session and is released at most once: either disposed, or
// detached and handed to the caller.
type proxyManager struct {
	log   *zap.Logger
	owner map[*Node]*Session
}

func newProxyManager(log *zap.Logger) *proxyManager {
	return &proxyManager{log: log, owner: make(map[*Node]*Session)}
}

// create clones source into parent at the local position at and records s
// as its owner.
func (m *proxyManager) create(s *Session, source, parent *Node, at Vec2) *Node {
	if s.Proxy != nil {
		m.log.Warn("proxy already exists for session", s.fields()...)
		return s.Proxy
	}
	p := source.Clone()
	p.Name = source.Name + "-proxy"
	p.Flags |= FlagProxy
	p.Interactable = false
	p.X, p.Y = at.X, at.Y
	parent.AddChild(p)
	s.Proxy = p
	m.owner[p] = s
	return p
}

// moveTo positions the proxy of s in its parent's content space.
func (m *proxyManager) moveTo(s *Session, at Vec2) {
	if s.Proxy == nil {
		return
	}
	s.Proxy.X, s.Proxy.Y = at.X, at.Y
}

// release disposes the proxy of s. Releasing a session without a proxy, or
// a proxy that is already gone, is a no-op.
func (m *proxyManager) release(s *Session) {
	p := s.Proxy
	if p == nil {
		return
	}
	if owner, ok := m.owner[p]; !ok || owner != s {
		m.log.Warn("proxy release by non-owner ignored", s.fields()...)
		return
	}
	delete(m.owner, p)
	s.Proxy = nil
	p.Dispose()
}

// detach gives up ownership of the proxy of s without disposing it. The
// node stays in the tree and s.Proxy keeps pointing at it.
func (m *proxyManager) detach(s *Session) {
	if s.Proxy == nil {
		return
	}
	delete(m.owner, s.Proxy)
	s.Proxy.Flags &^= FlagProxy
	s.Proxy.Interactable = true
}

// live returns the number of proxies currently owned by sessions.
func (m *proxyManager) live() int {
	return len(m.owner)
}
