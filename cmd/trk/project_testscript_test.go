package main

import (
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/askern/tracker/internal/testsupport"
)

func TestProjectScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/project",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
	})
}
