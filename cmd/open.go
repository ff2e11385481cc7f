package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-topics/cmd/config"
	"github.com/mattsolo1/grove-topics/pkg/service"
)

var openUlog = grovelogging.NewUnifiedLogger("grove-topics.cmd.open")

const openLong = `Pick a subject and a topic under the notes directory, creating either one
when it does not exist yet, then start the startup script with the topic path
as its only argument.

A new topic is filled from the template directory. Entry names containing
[topicname] have it replaced by the topic name (top level only).

Examples:
  topics -n ~/notes -t ~/notes/.template -s ~/bin/open-notes.sh
  topics open --selector dmenu --dmenu-command "dmenu -l 20"
  topics open --launcher tmux --exclude .git`

// NewOpenCmd returns the command running the interactive open flow.
func NewOpenCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Select or create a subject and topic, then launch the startup script",
		Long:  openLong,
		Args:  cobra.NoArgs,
		RunE:  RunOpen(svc),
	}
	config.AddOpenFlags(cmd)
	return cmd
}

// RunOpen returns the open flow as a cobra RunE, shared with the root command.
func RunOpen(svc **service.Service) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s := *svc

		res, err := s.Open(cmd.Context())
		if err != nil {
			return err
		}

		if res.Subject.Created {
			openUlog.Success("Subject created").
				Field("path", res.Subject.Path).
				Field("subject", res.Subject.Name).
				Pretty(fmt.Sprintf("Created subject: %s", res.Subject.Path)).
				PrettyOnly().
				Emit()
		}
		if res.Topic.Created {
			openUlog.Success("Topic created").
				Field("path", res.Topic.Path).
				Field("topic", res.Topic.Name).
				Pretty(fmt.Sprintf("Created topic: %s", res.Topic.Path)).
				PrettyOnly().
				Emit()
		}
		openUlog.Info("Startup script launched").
			Field("script", s.Config.StartupScript).
			Field("topic", res.Topic.Path).
			Pretty(fmt.Sprintf("Opened %s/%s", res.Subject.Name, res.Topic.Name)).
			PrettyOnly().
			Emit()
		return nil
	}
}
