// Package bazelimport converts Bazel BUILD files into daedalus build scripts.
// Only rules with a direct daedalus equivalent are converted (cc_library,
// cc_binary, filegroup); every other rule is skipped.
package bazelimport

import (
	"strings"

	"github.com/bazelbuild/buildtools/build"
	"github.com/rotisserie/eris"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

var kindMap = map[string]buildgraph.Kind{
	"cc_library": buildgraph.SourceSet,
	"cc_binary":  buildgraph.Executable,
	"filegroup":  buildgraph.Group,
}

// Rule returns the call expression and the matching target kind if expr is a
// convertible rule.
func Rule(expr build.Expr) (*build.CallExpr, buildgraph.Kind, bool) {
	callexpr, ok := expr.(*build.CallExpr)
	if !ok {
		return nil, "", false
	}

	name, ok := callexpr.X.(*build.Ident)
	if !ok {
		return nil, "", false
	}

	kind, ok := kindMap[name.Name]
	if !ok {
		return nil, "", false
	}

	return callexpr, kind, true
}

func parseString(expr build.Expr) (string, error) {
	str, ok := expr.(*build.StringExpr)
	if !ok {
		return "", eris.New("expected a string value")
	}
	return str.Value, nil
}

func parseStringList(expr build.Expr) ([]string, error) {
	list, ok := expr.(*build.ListExpr)
	if !ok {
		return nil, eris.New("expected a plain list; computed values like glob() aren't supported")
	}

	result := make([]string, 0, len(list.List))
	for _, item := range list.List {
		value, err := parseString(item)
		if err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, nil
}

func parseBool(expr build.Expr) (bool, error) {
	switch value := expr.(type) {
	case *build.Ident:
		switch value.Name {
		case "True":
			return true, nil
		case "False":
			return false, nil
		}
	case *build.LiteralExpr:
		switch value.Token {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}
	return false, eris.New("expected True, False, 1 or 0")
}

// depName reduces a Bazel label to the target name. Cross-package labels lose
// their package part since daedalus identifies targets by bare name.
func depName(label string) string {
	if idx := strings.LastIndex(label, ":"); idx != -1 {
		return label[idx+1:]
	}
	if idx := strings.LastIndex(label, "/"); idx != -1 {
		return label[idx+1:]
	}
	return label
}

// filePath converts a Bazel file label into a daedalus path.
func filePath(label string) string {
	if strings.HasPrefix(label, "//") {
		return strings.Replace(label, ":", "/", 1)
	}
	return strings.TrimPrefix(label, ":")
}

func filePaths(labels []string) []string {
	result := make([]string, len(labels))
	for idx, label := range labels {
		result[idx] = filePath(label)
	}
	return result
}

// ParseRule converts a single rule into a target. Bazel's hdrs are folded
// into the sources behind the srcs entries; the distinction doesn't exist
// here.
func ParseRule(callexpr *build.CallExpr, kind buildgraph.Kind) (*buildgraph.Target, error) {
	target := &buildgraph.Target{Kind: kind}
	var hdrs []string

	for _, arg := range callexpr.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			return nil, eris.New("found a positional argument, only named arguments are supported")
		}

		argname, _ := build.GetParamName(assign.LHS)

		var err error
		var items []string
		switch argname {
		case "name":
			target.Name, err = parseString(assign.RHS)
		case "srcs":
			items, err = parseStringList(assign.RHS)
			if err == nil {
				target.Sources = append(target.Sources, filePaths(items)...)
			}
		case "hdrs":
			items, err = parseStringList(assign.RHS)
			if err == nil {
				hdrs = append(hdrs, filePaths(items)...)
			}
		case "data":
			items, err = parseStringList(assign.RHS)
			if err == nil {
				target.Data = append(target.Data, filePaths(items)...)
			}
		case "deps":
			items, err = parseStringList(assign.RHS)
			if err == nil {
				for _, label := range items {
					target.Deps = append(target.Deps, depName(label))
				}
			}
		case "testonly":
			target.TestOnly, err = parseBool(assign.RHS)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
	}

	target.Sources = append(target.Sources, hdrs...)

	if target.Name == "" {
		return nil, eris.New("missing the name field")
	}
	return target, nil
}

// Convert parses a BUILD file and returns the convertible rules as targets in
// file order.
func Convert(filename string, contents []byte) ([]*buildgraph.Target, error) {
	file, err := build.ParseBuild(filename, contents)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse %s", filename)
	}

	var targets []*buildgraph.Target
	for _, expr := range file.Stmt {
		callexpr, kind, ok := Rule(expr)
		if !ok {
			continue
		}

		target, err := ParseRule(callexpr, kind)
		if err != nil {
			start, _ := callexpr.Span()
			return nil, eris.Wrapf(err, "failed to convert the rule at line %d", start.Line)
		}

		targets = append(targets, target)
	}

	return targets, nil
}
