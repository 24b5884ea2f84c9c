package standalone

import "time"

// Status is a point-in-time view of the supervisor.
type Status struct {
	Session    string     `json:"session"`
	State      string     `json:"state"`
	Running    bool       `json:"running"`
	PID        int        `json:"pid,omitempty"`
	Address    string     `json:"address"`
	ListenPort int        `json:"listen_port,omitempty"`
	BaseDir    string     `json:"base_dir,omitempty"`
	ConfigFile string     `json:"config_file,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	ExitError  string     `json:"exit_error,omitempty"`
}

// ConfigItem is one template variable as reported by the status endpoint.
type ConfigItem struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Status reports the current supervisor state.
func (s *Server) Status() Status {
	st := Status{
		Session:    s.session,
		Running:    s.Running(),
		PID:        s.PID(),
		Address:    s.ServerAddress(),
		BaseDir:    s.config.BaseDir(),
		ConfigFile: s.config.ConfigFile(),
	}
	if port, err := s.ListenPort(); err == nil {
		st.ListenPort = port
	}

	s.mu.Lock()
	st.State = s.state.String()
	if s.state == StateRunning && !s.startedAt.IsZero() {
		started := s.startedAt
		st.StartedAt = &started
	}
	if s.exitErr != nil {
		st.ExitError = s.exitErr.Error()
	}
	s.mu.Unlock()
	return st
}

// ConfigItems lists the template variables with their current values.
func (s *Server) ConfigItems() []ConfigItem {
	vars := s.config.Variables()
	items := make([]ConfigItem, 0, len(vars))
	for _, v := range vars {
		items = append(items, ConfigItem{Name: v.Name, Type: v.Type.String(), Value: v.Value})
	}
	return items
}
