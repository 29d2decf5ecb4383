package human

import (
	"fmt"

	"github.com/dtnitsch/spell-pseudodata/internal/common"
	"github.com/dtnitsch/spell-pseudodata/pkg/storage"
	"github.com/dustin/go-humanize"
)

// Run writes the human-readable report. A missing table is reported to the
// operator and is not an error.
func Run(env *common.Env) error {
	table, err := env.LoadTable()
	if err != nil {
		if env.ReportMissingTable(err) {
			return nil
		}
		return err
	}

	s := &storage.Storage{}
	lines, err := s.WriteReport(env.Config.ReportFile, table)
	if err != nil {
		return err
	}
	env.Logger.Info("wrote report", "path", env.Config.ReportFile, "lines", lines)
	fmt.Fprintf(env.Out, "Report saved to: %s (%s lines)\n", env.Config.ReportFile, humanize.Comma(int64(lines)))
	return nil
}
