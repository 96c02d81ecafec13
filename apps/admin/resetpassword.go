package main

import (
	"context"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

func (cli *commandLine) resetPassword(region, email, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrRepo.GetUserByEmail(ctx, region, core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	if _, err := cli.usrRepo.UpdateUser(ctx, region, usr); err != nil {
		return err
	}
	return nil
}
