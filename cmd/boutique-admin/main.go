// Command boutique-admin performs out-of-band administration of the store:
// running migrations and changing the admin password.
//
//	boutique-admin migrate
//	boutique-admin passwd -user admin -password 'new secret'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"boutique/internal/config"
	"boutique/internal/repos"
	"boutique/internal/services"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cfg := config.Load()

	var err error
	switch os.Args[1] {
	case "migrate":
		err = migrate(cfg)
	case "passwd":
		err = passwd(cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: boutique-admin migrate | passwd -user NAME -password SECRET")
}

func migrate(cfg config.Config) error {
	// OpenDB migrates before returning.
	db, err := repos.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", cfg.DBPath, err)
	}
	defer db.Close()
	logrus.Infof("[migrate] %s is up to date", cfg.DBPath)
	return nil
}

func passwd(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	user := fs.String("user", repos.DefaultAdminUser, "admin username")
	pass := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pass == "" {
		return fmt.Errorf("-password is required")
	}

	db, err := repos.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := services.NewAuthService(repos.NewAdminRepo(db))
	if err := auth.SetPassword(context.Background(), *user, *pass); err != nil {
		return err
	}
	logrus.Infof("[passwd] password updated for %q", *user)
	return nil
}
