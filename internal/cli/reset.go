package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Print("This archives the current plan and clears goals, history, and journal. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.Manager.ResetPlan()
	fmt.Println("Plan reset. Past challenges are kept under 'daybreak challenges'.")
	return nil
}
