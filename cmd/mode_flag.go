package cmd

import (
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/lawlens/internal/law"
)

var _ pflag.Value = (*modeValue)(nil)

// modeValue is a pflag.Value that only accepts ipc or bns.
type modeValue struct {
	mode *law.SearchMode
}

func newModeValue(dst *law.SearchMode) *modeValue {
	return &modeValue{mode: dst}
}

func (v *modeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v *modeValue) Set(s string) error {
	m, err := law.ParseMode(s)
	if err != nil {
		return err
	}
	*v.mode = m
	return nil
}

func (v *modeValue) Type() string { return "ipc|bns" }
