package main

import (
	"context"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/user"
)

// addUser updates or creates a user.User in the region's workspace.
func (cli *commandLine) addUser(region, name, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(ctx, region, email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:      name,
			Email:     email,
			Role:      "editor",
			CreatedAt: time.Now().UTC(),
		}
	}
	if name != "" {
		usr.Name = name
	}
	if isAdmin {
		usr.Role = "admin"
	}
	usr.SetActive(true)
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(ctx, region, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, region, usr)
	}
	return err
}
