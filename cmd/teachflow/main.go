package main

import (
	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Dev           bool             `help:"Enable development logging." env:"TEACHFLOW_DEV"`
		Version       kong.VersionFlag `help:"Print version and exit."`
		Serve         ServeCmd         `cmd:"" default:"1" help:"Start the HTTP API."`
		ResetPassword ResetPasswordCmd `cmd:"" help:"Replace a user's password with a generated temporary one."`
		SetPassword   SetPasswordCmd   `cmd:"" help:"Set a user's password from an interactive prompt."`
	}
)

type Globals struct {
	Dev     bool
	Version string
}

func main() {
	cmd := kong.Parse(&cli,
		kong.Name("teachflow"),
		kong.Description("Business management backend for independent teachers."),
		kong.Vars{"version": version},
	)
	err := cmd.Run(&Globals{Dev: cli.Dev, Version: version})
	cmd.FatalIfErrorf(err)
}
