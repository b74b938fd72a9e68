package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

func (cli *commandLine) listUsers() error {
	users, err := cli.usrRepo.QueryAllUsers(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tEMAIL\tLANGUAGE\tACTIVE\tLAST LOGIN")
	for _, usr := range users {
		lastLogin := "never"
		if !usr.LastLogin.IsZero() {
			lastLogin = usr.LastLogin.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", usr.Username, usr.Email, usr.Language, usr.IsActive, lastLogin)
	}
	return w.Flush()
}
