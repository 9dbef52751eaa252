package commands

import (
	"github.com/spf13/pflag"

	"taskboard/internal/service"
)

// statusValue is a pflag.Value accepting any spelling ParseStatus accepts.
type statusValue struct {
	status *service.Status
	set    bool
}

var _ pflag.Value = (*statusValue)(nil)

func newStatusValue(def service.Status, p *service.Status) *statusValue {
	*p = def
	return &statusValue{status: p}
}

func (v *statusValue) String() string {
	if v.status == nil {
		return ""
	}
	return string(*v.status)
}

func (v *statusValue) Set(s string) error {
	st, err := service.ParseStatus(s)
	if err != nil {
		return err
	}
	*v.status = st
	v.set = true
	return nil
}

func (v *statusValue) Type() string { return "status" }

// filter returns the parsed status, or nil when the flag was not given.
func (v *statusValue) filter() *service.Status {
	if v == nil || !v.set {
		return nil
	}
	st := *v.status
	return &st
}

// statusFlag registers --status on fs.
func statusFlag(fs *pflag.FlagSet, def service.Status, p *service.Status, usage string) *statusValue {
	v := newStatusValue(def, p)
	fs.Var(v, "status", usage)
	return v
}
