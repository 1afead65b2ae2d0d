package strip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticHints answers every path with the same language.
type staticHints string

func (h staticHints) Match(string) (string, int) {
	if h == "" {
		return "", 0
	}
	return string(h), 1
}

func TestRegistry_Resolve(t *testing.T) {
	r := DefaultRegistry()

	def, err := r.Resolve(LangGo)
	require.NoError(t, err)
	assert.Equal(t, "Go", def.Title)

	_, err = r.Resolve("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))

	var ule *UnsupportedLanguageError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, Language("cobol"), ule.Language)
}

func TestRegistry_Languages(t *testing.T) {
	defs := DefaultRegistry().Languages()
	require.Len(t, defs, 23)
	for i := 1; i < len(defs); i++ {
		assert.Less(t, defs[i-1].Name, defs[i].Name)
	}
	for _, d := range defs {
		assert.NotEmpty(t, d.Policy.Comments, "%s has no comment kinds", d.Name)
		assert.NotEmpty(t, d.Extensions, "%s has no extensions", d.Name)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := DefaultRegistry()
	for name, want := range map[string]Language{
		"go":         LangGo,
		"JavaScript": LangJavaScript,
		"C++":        LangCPP,
		"c#":         LangCSharp,
		"PYTHON":     LangPython,
	} {
		d, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, want, d.Name, name)
	}
	_, ok := r.Lookup("brainfuck")
	assert.False(t, ok)
}

func TestRegistry_Identify(t *testing.T) {
	r := DefaultRegistry()
	tests := []struct {
		path  string
		head  string
		hints HintMatcher
		want  Language
	}{
		{path: "main.go", want: LangGo},
		{path: "pkg/MAIN.PY", want: LangPython},
		{path: "lib.rs", want: LangRust},
		{path: "app.tsx", want: LangTSX},
		{path: "src/index.mjs", want: LangJavaScript},
		{path: "/home/u/.bashrc", want: LangBash},
		{path: "project/Gemfile", want: LangRuby},
		{path: "Cargo.lock", want: LangTOML},
		{path: "doc/README.md", want: LangMarkdown},
		{path: "icon.svg", want: LangXML},
		{path: "build.gradle.kts", want: LangKotlin},
		{path: "deploy/Dockerfile", want: LangDockerfile},
		{path: "Dockerfile.dev", want: LangDockerfile},
		{path: "scripts/Setup.ps1", want: LangPowerShell},
		{path: "bin/setup", head: "#!/usr/bin/env pwsh\n", want: LangPowerShell},
		{path: "bin/tool", head: "#!/usr/bin/env python3\nprint(1)\n", want: LangPython},
		{path: "bin/run", head: "#!/bin/bash -e\n", want: LangBash},
		{path: "bin/srv", head: "#!/usr/bin/env -S node --harmony\n", want: LangJavaScript},
		{path: "foo.h", hints: staticHints("C"), want: LangC},
		{path: "main.go", hints: staticHints("unknown-lang"), want: LangGo},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			d, err := r.Identify(tt.path, []byte(tt.head), tt.hints)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
		})
	}
}

func TestRegistry_Identify_Failures(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Identify("README", nil, nil)
	assert.True(t, errors.Is(err, ErrNoStripperFound))

	_, err = r.Identify("script", []byte("#!/usr/bin/env perl\n"), nil)
	assert.True(t, errors.Is(err, ErrNoStripperFound))

	_, err = r.Identify("include/foo.h", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousLanguage))

	var amb *AmbiguousLanguageError
	require.True(t, errors.As(err, &amb))
	assert.ElementsMatch(t, []Language{LangC, LangCPP}, amb.Candidates)
	assert.Contains(t, amb.Suggestion, `"pattern": "**/*.h"`)
	assert.Contains(t, err.Error(), "multiple strippers found for 'include/foo.h'")
}

func TestShebangInterpreter(t *testing.T) {
	tests := map[string]string{
		"#!/bin/sh\n":                      "sh",
		"#!/usr/bin/python3.12\n":          "python",
		"#!/usr/bin/env python3\n":         "python",
		"#!/usr/bin/env -S FOO=1 ruby -w\n": "ruby",
		"#! /usr/local/bin/lua5.4":         "lua",
		"#!\n":                             "",
		"print(1)\n":                       "",
	}
	for head, want := range tests {
		assert.Equal(t, want, shebangInterpreter([]byte(head)), head)
	}
}

func TestRegistry_CloseReleasesGrammars(t *testing.T) {
	r := NewBuiltinRegistry()
	d, err := r.Resolve(LangGo)
	require.NoError(t, err)
	require.NotNil(t, d.Grammar())
	assert.NoError(t, r.Close())
}
