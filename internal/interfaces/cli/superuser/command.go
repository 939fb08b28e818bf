package superuser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	principalapp "github.com/orris-inc/warden/internal/application/principal"
	infraAuth "github.com/orris-inc/warden/internal/infrastructure/auth"
	"github.com/orris-inc/warden/internal/infrastructure/config"
	"github.com/orris-inc/warden/internal/infrastructure/database"
	"github.com/orris-inc/warden/internal/infrastructure/repository"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/db"
	"github.com/orris-inc/warden/internal/shared/logger"
)

var (
	env        string
	configPath string
	cmdInput   principalapp.CreateSuperuserCommand
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create the first operator account",
		Long:  `Create an operator holding the superuser role. Fails once a superuser exists. The password is prompted for when --password is not given.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&cmdInput.Username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&cmdInput.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&cmdInput.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&cmdInput.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&cmdInput.Password, "password", "", "Password, prompted for when empty")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, "release"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if cmdInput.Password == "" {
		password, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cmdInput.Password = password
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	gdb := database.Get()

	uc := principalapp.NewCreateSuperuserUseCase(
		repository.NewOperatorRepository(gdb, log),
		repository.NewRoleRepository(gdb, log),
		infraAuth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost),
		db.NewTransactionManager(gdb),
		log.Named("createsuperuser"),
	)

	operator, err := uc.Execute(cmd.Context(), cmdInput)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (%s)\n", operator.Username(), operator.UUID())
	return nil
}

// promptPassword reads the password twice without echo when stdin is a
// terminal, otherwise it reads a single line.
func promptPassword(in io.Reader, out io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	read := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	password, err := read("Password: ")
	if err != nil {
		return "", err
	}
	again, err := read("Password (again): ")
	if err != nil {
		return "", err
	}
	if password != again {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
