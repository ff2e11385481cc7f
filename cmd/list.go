package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-topics/cmd/config"
	"github.com/mattsolo1/grove-topics/pkg/service"
	"github.com/mattsolo1/grove-topics/pkg/tree"
)

var listUlog = grovelogging.NewUnifiedLogger("grove-topics.cmd.list")

func NewListCmd(svc **service.Service) *cobra.Command {
	var (
		listJSON    bool
		listYAML    bool
		listSubject string
	)

	cmd := &cobra.Command{
		Use:     "list [subject]",
		Short:   "List subjects and their topics",
		Aliases: []string{"ls"},
		Long: `List the subjects under the notes directory and the topics inside each.

Examples:
  topics list -n ~/notes          # Table of every subject and topic
  topics list math                # Topics of one subject
  topics list --json              # Machine-readable tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			if listJSON && listYAML {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}
			if len(args) > 0 {
				listSubject = args[0]
			}

			subjects, err := s.Tree()
			if err != nil {
				return err
			}
			subjects = filterSubjects(subjects, listSubject)

			if len(subjects) == 0 {
				pretty := "No subjects found"
				if listSubject != "" {
					pretty = fmt.Sprintf("No subject named '%s'", listSubject)
				}
				if listJSON || listYAML {
					pretty = "[]"
				}
				listUlog.Info("No subjects found").
					Field("notes_dir", s.Config.NotesDir).
					Field("subject", listSubject).
					Pretty(pretty).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			switch {
			case listJSON:
				return outputJSON(os.Stdout, subjects)
			case listYAML:
				return outputYAML(os.Stdout, subjects)
			default:
				return printTopicsTable(os.Stdout, subjects)
			}
		},
	}

	config.AddNotesDirFlag(cmd)
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().StringVar(&listSubject, "subject", "", "Only list topics of this subject")

	return cmd
}

func filterSubjects(subjects []*tree.Item, name string) []*tree.Item {
	if name == "" {
		return subjects
	}
	for _, s := range subjects {
		if s.Name == name {
			return []*tree.Item{s}
		}
	}
	return nil
}

func printTopicsTable(out io.Writer, subjects []*tree.Item) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "SUBJECT\tTOPIC\tMODIFIED")
	fmt.Fprintln(w, "-------\t-----\t----------")

	for _, subject := range subjects {
		if len(subject.Children) == 0 {
			fmt.Fprintf(w, "%s\t%s\t%s\n", subject.Name, "-", subject.ModTime.Format("2006-01-02"))
			continue
		}
		for _, topic := range subject.Children {
			fmt.Fprintf(w, "%s\t%s\t%s\n", subject.Name, topic.Name, topic.ModTime.Format("2006-01-02"))
		}
	}

	return w.Flush()
}

func outputJSON(out io.Writer, items []*tree.Item) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(items)
}

func outputYAML(out io.Writer, items []*tree.Item) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(items); err != nil {
		return err
	}
	return encoder.Close()
}
