package buildscript

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"
)

type starlarkIterable interface {
	Len() int
	Iterate() starlark.Iterator
}

func starlarkIterable2stringSlice(input starlarkIterable, field string) ([]string, error) {
	if value, ok := input.(*starlark.List); ok && value == nil {
		return nil, nil
	}
	if input == nil || input.Len() == 0 {
		return nil, nil
	}

	result := make([]string, 0, input.Len())
	iter := input.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		switch value := item.(type) {
		case starlark.String:
			result = append(result, value.GoString())
		default:
			return nil, eris.Errorf("expected all items in %s to be strings but found %s", field, item.Type())
		}
	}
	return result, nil
}

// normalizePath turns a path from the script into its //-rooted form. Paths
// are relative to the script's directory; a leading // anchors them at the
// project root instead. A trailing slash marks a directory entry and survives
// normalization.
func normalizePath(ctx *parserCtx, path string) (string, error) {
	if path == "" {
		return "", eris.New("empty path")
	}

	dirSuffix := ""
	if strings.HasSuffix(path, "/") && path != "//" {
		dirSuffix = "/"
	}

	var rel string
	if strings.HasPrefix(path, "//") {
		rel = filepath.Clean(filepath.FromSlash(path[2:]))
	} else {
		abs := filepath.Join(filepath.Dir(ctx.filepath), path)

		var err error
		rel, err = filepath.Rel(ctx.projectRoot, abs)
		if err != nil {
			return "", eris.Wrapf(err, "failed to resolve path %s", path)
		}
	}

	if rel == "." {
		rel = ""
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", eris.Errorf("the path %s points outside of the project root", path)
	}

	return "//" + filepath.ToSlash(rel) + dirSuffix, nil
}

// resolvePath returns the absolute OS path for a script path.
func resolvePath(ctx *parserCtx, path string) (string, error) {
	norm, err := normalizePath(ctx, path)
	if err != nil {
		return "", err
	}

	return filepath.Join(ctx.projectRoot, filepath.FromSlash(strings.TrimPrefix(norm, "//"))), nil
}

func simplifyPath(ctx *parserCtx, path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	if strings.HasPrefix(absPath, ctx.projectRoot) {
		return "//" + filepath.ToSlash(absPath[len(ctx.projectRoot)+1:])
	}
	return path
}

func pathList(ctx *parserCtx, input *starlark.List, field string) ([]string, error) {
	items, err := starlarkIterable2stringSlice(input, field)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	result := make([]string, len(items))
	for idx, item := range items {
		result[idx], err = normalizePath(ctx, item)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid path in %s", field)
		}
	}
	return result, nil
}
