package cli

import (
	"fmt"

	"github.com/julianstephens/daybreak/internal/engine"
)

type ProfileCmd struct {
	Name   *string  `help:"Display name used in summaries."`
	Sex    *string  `help:"Sex."`
	Age    *int     `help:"Age in years."`
	Height *float64 `help:"Height in cm."`
	Weight *float64 `help:"Weight in kg."`
	Wake   *string  `help:"Usual wake time (HH:MM)."`
	Sleep  *string  `help:"Usual sleep time (HH:MM)."`
	Notify *string  `help:"Notification preference."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	update := engine.ProfileUpdate{
		Name:                   c.Name,
		Sex:                    c.Sex,
		Age:                    c.Age,
		HeightCM:               c.Height,
		WeightKG:               c.Weight,
		WakeTime:               c.Wake,
		SleepTime:              c.Sleep,
		NotificationPreference: c.Notify,
	}

	if update == (engine.ProfileUpdate{}) {
		data := ctx.Manager.Snapshot()
		fmt.Printf("Name:   %s\n", data.Name)
		fmt.Printf("Sex:    %s\n", data.Sex)
		fmt.Printf("Age:    %d\n", data.Age)
		fmt.Printf("Height: %.1f cm\n", data.HeightCM)
		fmt.Printf("Weight: %.1f kg\n", data.WeightKG)
		fmt.Printf("Wake:   %s\n", data.WakeTime)
		fmt.Printf("Sleep:  %s\n", data.SleepTime)
		fmt.Printf("Notify: %s\n", data.NotificationPreference)
		return nil
	}

	ctx.Manager.UpdateProfile(update)
	fmt.Println("Profile updated")
	return nil
}
