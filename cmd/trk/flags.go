package main

import (
	"github.com/spf13/pflag"

	"github.com/askern/tracker/version"
)

// kindValue is a pflag.Value for bump kinds, rejecting anything but patch,
// minor or major at parse time.
type kindValue struct {
	kind *version.Kind
}

var _ pflag.Value = kindValue{}

func newKindValue(kind *version.Kind) kindValue {
	return kindValue{kind: kind}
}

func (v kindValue) String() string {
	if v.kind == nil {
		return ""
	}
	return string(*v.kind)
}

func (v kindValue) Set(value string) error {
	kind, err := version.ParseKind(value)
	if err != nil {
		return err
	}
	*v.kind = kind
	return nil
}

func (v kindValue) Type() string {
	return "kind"
}
