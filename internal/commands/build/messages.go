package buildcmd

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const buildGraphMessageType = "contentgraph.build_graph"

// BuildGraphCommand maps every configured content source into the node
// graph and optionally exports it.
type BuildGraphCommand struct {
	// OutputPath receives the JSON export. Empty skips the export.
	OutputPath string `json:"output_path,omitempty"`
	// FailOnDangling turns unresolved cross-references into an error.
	FailOnDangling bool `json:"fail_on_dangling,omitempty"`
}

// Type implements command.Message.
func (BuildGraphCommand) Type() string { return buildGraphMessageType }

func (cmd BuildGraphCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputPath, validation.When(cmd.OutputPath != "", validation.By(func(value any) error {
			path := strings.TrimSpace(value.(string))
			if path == "" || strings.HasSuffix(path, "/") {
				return validation.NewError("contentgraph.build_graph.output_path_file", "output path must name a file")
			}
			if !strings.EqualFold(filepath.Ext(path), ".json") {
				return validation.NewError("contentgraph.build_graph.output_path_json", "output path must end in .json")
			}
			return nil
		}))),
	)
}
