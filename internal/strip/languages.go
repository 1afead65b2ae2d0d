package strip

import (
	"unsafe"

	tree_sitter_powershell "github.com/airbus-cert/tree-sitter-powershell/bindings/go"
	tree_sitter_dockerfile "github.com/camdencheek/tree-sitter-dockerfile/bindings/go"
	tree_sitter_kotlin "github.com/fwcd/tree-sitter-kotlin/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	tree_sitter_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	tree_sitter_xml "github.com/tree-sitter-grammars/tree-sitter-xml/bindings/go"
	tree_sitter_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func treeSitter(name Language, lang func() unsafe.Pointer) func() Grammar {
	return func() Grammar {
		return newTreeSitterGrammar(name, lang())
	}
}

// Shared policy fragments.
var (
	cStyleDocPrefixes = []string{"/**", "///", "/*!", "//!"}

	jsDirectives = patterns(
		`^///\s*<(reference|amd-module|amd-dependency)\b`,
		`^//\s*@ts-`,
		`^/\*\s*@ts-`,
		`^/\*\*?\s*@jsx(Frag|ImportSource|Runtime)?\b`,
		`^/\*\s*[#@]__(PURE|NO_SIDE_EFFECTS)__\s*\*/$`,
		`^/\*\s*webpack[A-Z]\w*\s*:`,
	)

	goDocTargets = kinds(
		"package_clause",
		"function_declaration",
		"method_declaration",
		"type_declaration",
		"const_declaration",
		"var_declaration",
	)
)

// builtinDefinitions returns a fresh copy of every compiled-in language.
func builtinDefinitions() []*Definition {
	return []*Definition{
		define(&Definition{
			Name:       LangGo,
			Title:      "Go",
			Extensions: []string{"go"},
			Policy: Policy{
				Comments:    kinds("comment"),
				Docstrings:  DocstringAttached,
				DocTargets:  goDocTargets,
				CgoPreamble: true,
				Directives: patterns(
					`^//go:`,
					`^//\s*\+build\b`,
					`^//export\s`,
					`^//extern\s`,
					`^/[/*]line\s`,
				),
			},
		}, treeSitter(LangGo, tree_sitter_go.Language)),

		define(&Definition{
			Name:         LangPython,
			Title:        "Python",
			Extensions:   []string{"py", "pyi", "pyw"},
			Interpreters: []string{"python", "pypy"},
			Policy: Policy{
				Comments:         kinds("comment"),
				Docstrings:       DocstringPython,
				Shebang:          true,
				HeaderDirectives: patterns(`^#.*?coding[:=][ \t]*[-\w.]+`),
				HeaderLines:      2,
			},
		}, treeSitter(LangPython, tree_sitter_python.Language)),

		define(&Definition{
			Name:       LangRust,
			Title:      "Rust",
			Extensions: []string{"rs"},
			Policy: Policy{
				Comments:           kinds("line_comment", "block_comment"),
				DocPrefixes:        []string{"///", "//!", "/**", "/*!"},
				LineBreakInComment: true,
			},
		}, treeSitter(LangRust, tree_sitter_rust.Language)),

		define(&Definition{
			Name:         LangTypeScript,
			Title:        "TypeScript",
			Extensions:   []string{"ts", "mts", "cts"},
			Interpreters: []string{"ts-node"},
			Policy: Policy{
				Comments:    kinds("comment", "html_comment"),
				DocPrefixes: []string{"/**"},
				Directives:  jsDirectives,
			},
		}, treeSitter(LangTypeScript, tree_sitter_typescript.LanguageTypescript)),

		define(&Definition{
			Name:       LangTSX,
			Title:      "TypeScript with React",
			Extensions: []string{"tsx"},
			Policy: Policy{
				Comments:    kinds("comment", "html_comment"),
				DocPrefixes: []string{"/**"},
				Directives:  jsDirectives,
			},
		}, treeSitter(LangTSX, tree_sitter_typescript.LanguageTSX)),

		define(&Definition{
			Name:         LangJavaScript,
			Title:        "JavaScript",
			Extensions:   []string{"js", "mjs", "cjs", "jsx"},
			Interpreters: []string{"node", "nodejs", "bun", "deno"},
			Policy: Policy{
				Comments:    kinds("comment", "html_comment"),
				DocPrefixes: []string{"/**"},
				Directives:  jsDirectives,
			},
		}, treeSitter(LangJavaScript, tree_sitter_javascript.Language)),

		define(&Definition{
			Name:       LangC,
			Title:      "C",
			Extensions: []string{"c", "h"},
			Policy: Policy{
				Comments:    kinds("comment"),
				DocPrefixes: cStyleDocPrefixes,
			},
		}, treeSitter(LangC, tree_sitter_c.Language)),

		define(&Definition{
			Name:       LangCPP,
			Title:      "C++",
			Extensions: []string{"cpp", "cc", "cxx", "c++", "h", "hh", "hpp", "hxx", "ipp", "inl"},
			Policy: Policy{
				Comments:    kinds("comment"),
				DocPrefixes: cStyleDocPrefixes,
			},
		}, treeSitter(LangCPP, tree_sitter_cpp.Language)),

		define(&Definition{
			Name:       LangJava,
			Title:      "Java",
			Extensions: []string{"java"},
			Policy: Policy{
				Comments:    kinds("line_comment", "block_comment"),
				DocPrefixes: []string{"/**"},
			},
		}, treeSitter(LangJava, tree_sitter_java.Language)),

		define(&Definition{
			Name:         LangBash,
			Title:        "Bash",
			Extensions:   []string{"sh", "bash"},
			Filenames:    []string{".bashrc", ".bash_profile", ".bash_logout", ".profile"},
			Interpreters: []string{"sh", "bash", "dash", "ksh"},
			Policy: Policy{
				Comments: kinds("comment"),
				Shebang:  true,
			},
		}, treeSitter(LangBash, tree_sitter_bash.Language)),

		define(&Definition{
			Name:         LangRuby,
			Title:        "Ruby",
			Extensions:   []string{"rb", "rake", "gemspec", "ru"},
			Filenames:    []string{"Gemfile", "Rakefile", "Guardfile", "Vagrantfile"},
			Interpreters: []string{"ruby", "jruby"},
			Policy: Policy{
				Comments: kinds("comment"),
				Shebang:  true,
				HeaderDirectives: patterns(
					`^#\s*(-\*-\s*)?(frozen_string_literal|encoding|coding|warn_indent|shareable_constant_value)\s*:`,
				),
			},
		}, treeSitter(LangRuby, tree_sitter_ruby.Language)),

		define(&Definition{
			Name:       LangCSharp,
			Title:      "C#",
			Extensions: []string{"cs"},
			Policy: Policy{
				Comments:    kinds("comment"),
				DocPrefixes: []string{"///", "/**"},
			},
		}, treeSitter(LangCSharp, tree_sitter_c_sharp.Language)),

		define(&Definition{
			Name:         LangPHP,
			Title:        "PHP",
			Extensions:   []string{"php"},
			Interpreters: []string{"php"},
			Policy: Policy{
				Comments:    kinds("comment"),
				DocPrefixes: []string{"/**"},
			},
		}, treeSitter(LangPHP, tree_sitter_php.LanguagePHP)),

		define(&Definition{
			Name:       LangCSS,
			Title:      "CSS",
			Extensions: []string{"css"},
			Policy: Policy{
				Comments: kinds("comment", "js_comment"),
			},
		}, treeSitter(LangCSS, tree_sitter_css.Language)),

		define(&Definition{
			Name:       LangYAML,
			Title:      "YAML",
			Extensions: []string{"yaml", "yml"},
			Policy: Policy{
				Comments: kinds("comment"),
			},
		}, treeSitter(LangYAML, tree_sitter_yaml.Language)),

		define(&Definition{
			Name:       LangTOML,
			Title:      "TOML",
			Extensions: []string{"toml"},
			Filenames:  []string{"Cargo.lock", "Pipfile", "poetry.lock"},
			Policy: Policy{
				Comments: kinds("comment"),
			},
		}, treeSitter(LangTOML, tree_sitter_toml.Language)),

		define(&Definition{
			Name:         LangLua,
			Title:        "Lua",
			Extensions:   []string{"lua"},
			Interpreters: []string{"lua", "luajit"},
			Policy: Policy{
				Comments:    kinds("comment"),
				DocPrefixes: []string{"---"},
				Shebang:     true,
			},
		}, treeSitter(LangLua, tree_sitter_lua.Language)),

		define(&Definition{
			Name:       LangMarkdown,
			Title:      "Markdown",
			Extensions: []string{"md", "markdown"},
			Policy: Policy{
				Comments:     kinds("comment"),
				TextComments: true,
			},
		}, func() Grammar { return newMarkdownGrammar() }),

		define(&Definition{
			Name:       LangHTML,
			Title:      "HTML",
			Extensions: []string{"html", "htm", "xhtml"},
			Policy: Policy{
				Comments:     kinds("comment"),
				Directives:   patterns(`^<!--\s*\[if\b`),
				TextComments: true,
			},
		}, func() Grammar { return newHTMLGrammar() }),

		define(&Definition{
			Name:       LangXML,
			Title:      "XML",
			Extensions: []string{"xml", "xsd", "xsl", "xslt", "svg", "plist"},
			Policy: Policy{
				Comments:     kinds("Comment"),
				TextComments: true,
			},
		}, treeSitter(LangXML, tree_sitter_xml.LanguageXML)),

		define(&Definition{
			Name:         LangKotlin,
			Title:        "Kotlin",
			Extensions:   []string{"kt", "kts"},
			Interpreters: []string{"kotlin"},
			Policy: Policy{
				Comments:    kinds("line_comment", "multiline_comment"),
				DocPrefixes: []string{"/**"},
				Shebang:     true,
			},
		}, treeSitter(LangKotlin, tree_sitter_kotlin.Language)),

		define(&Definition{
			Name:       LangDockerfile,
			Title:      "Dockerfile",
			Extensions: []string{"dockerfile"},
			Filenames:  []string{"Dockerfile", "Dockerfile.*", "Containerfile", "Containerfile.*"},
			Policy: Policy{
				Comments:         kinds("comment"),
				HeaderDirectives: patterns(`^#\s*(syntax|escape|check)\s*=`),
			},
		}, treeSitter(LangDockerfile, tree_sitter_dockerfile.Language)),

		define(&Definition{
			Name:         LangPowerShell,
			Title:        "PowerShell",
			Extensions:   []string{"ps1", "psm1", "psd1"},
			Interpreters: []string{"pwsh", "powershell"},
			Policy: Policy{
				Comments:    kinds("comment"),
				Shebang:     true,
				Directives:  patterns(`^#(?i:requires)\s`),
				DocPrefixes: []string{"<#"},
			},
		}, treeSitter(LangPowerShell, tree_sitter_powershell.Language)),
	}
}
