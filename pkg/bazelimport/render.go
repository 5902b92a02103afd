package bazelimport

import (
	"fmt"
	"strings"

	"github.com/ngld/daedalus/pkg/buildgraph"
)

// Render returns the daedalus build script for the passed targets.
func Render(targets []*buildgraph.Target) string {
	buffer := strings.Builder{}
	buffer.WriteString("# Converted from a Bazel BUILD file by daedalus import-bazel.\n")

	for _, target := range targets {
		buffer.WriteString("\n")
		fmt.Fprintf(&buffer, "%s(\n", target.Kind)
		fmt.Fprintf(&buffer, "    %q,\n", target.Name)

		writeList(&buffer, "srcs", target.Sources)
		writeList(&buffer, "data", target.Data)
		writeList(&buffer, "deps", target.Deps)

		if target.TestOnly {
			buffer.WriteString("    testonly = True,\n")
		}
		if target.Condition != "" {
			fmt.Fprintf(&buffer, "    condition = %q,\n", target.Condition)
		}
		buffer.WriteString(")\n")
	}

	return buffer.String()
}

func writeList(buffer *strings.Builder, field string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(buffer, "    %s = [", field)
	for idx, item := range items {
		if idx > 0 {
			buffer.WriteString(", ")
		}
		fmt.Fprintf(buffer, "%q", item)
	}
	buffer.WriteString("],\n")
}
