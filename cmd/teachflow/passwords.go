package main

import (
	"os"

	clicmd "github.com/terraincognita07/teachflow/internal/cli"
	"github.com/terraincognita07/teachflow/internal/logger"
)

type ResetPasswordCmd struct {
	Email  string `arg:"" help:"Email of the account to reset."`
	DBPath string `help:"SQLite database path." default:"data/teachflow.db" env:"DB_PATH" type:"path"`
}

func (cmd *ResetPasswordCmd) Run(globals *Globals) error {
	return clicmd.RunResetPasswordCommand(cmd.DBPath, cmd.Email, os.Stdout, logger.Setup(globals.Dev))
}

type SetPasswordCmd struct {
	Email  string `arg:"" help:"Email of the account to update."`
	DBPath string `help:"SQLite database path." default:"data/teachflow.db" env:"DB_PATH" type:"path"`
}

func (cmd *SetPasswordCmd) Run(globals *Globals) error {
	return clicmd.RunSetPasswordCommand(cmd.DBPath, cmd.Email, os.Stdin, os.Stdout, logger.Setup(globals.Dev))
}
