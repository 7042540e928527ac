package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/service"
)

var errHelp = errors.New("help provided")

type userUpserter interface {
	Upsert(ctx context.Context, user *models.User) error
}

type commandLine struct {
	users        userUpserter
	migrate      func(ctx context.Context, command string, args ...string) error
	readPassword func(fd int) ([]byte, error)
	out          io.Writer
	logger       *zap.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate [up|down|status|version]           apply or inspect schema migrations")
	fmt.Fprintln(cli.out, "  adduser -email EMAIL -name NAME [-role R]   create or update a login; the password is prompted")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	switch args[0] {
	case "migrate":
		command := "up"
		if len(args) > 1 {
			command = args[1]
		}
		switch command {
		case "up", "down", "status", "version":
		default:
			cli.printUsage()
			return errHelp
		}
		if err := cli.migrate(ctx, command); err != nil {
			return err
		}
		cli.logger.Info("migrate finished", zap.String("command", command))
		return nil

	case "adduser":
		fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		email := fs.String("email", "", "login email")
		name := fs.String("name", "", "display name")
		role := fs.String("role", string(models.RoleAdmin), "admin or student")
		if err := fs.Parse(args[1:]); err != nil {
			return errHelp
		}
		if *email == "" || *name == "" {
			fs.Usage()
			return errHelp
		}
		userRole := models.UserRole(*role)
		if userRole != models.RoleAdmin && userRole != models.RoleStudent {
			return fmt.Errorf("role must be admin or student, got %q", *role)
		}

		fmt.Fprint(cli.out, "Enter password: ")
		pwd, err := cli.readPassword(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if len(pwd) == 0 {
			return errors.New("password must not be empty")
		}
		return cli.addUser(ctx, *email, *name, userRole, string(pwd))

	default:
		cli.printUsage()
		return errHelp
	}
}

// addUser creates the account or overwrites the one holding the same email.
func (cli *commandLine) addUser(ctx context.Context, email, name string, role models.UserRole, password string) error {
	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Role:         role,
		Name:         name,
		Email:        service.NormalizeEmail(email),
		PasswordHash: hash,
	}
	if err := cli.users.Upsert(ctx, user); err != nil {
		return err
	}
	cli.logger.Info("user saved", zap.String("email", user.Email), zap.String("role", string(role)))
	return nil
}
