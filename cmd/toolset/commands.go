package main

import (
	"fmt"
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
	httpclient "github.com/mutablelogic/go-toolset/pkg/httpclient"
)

type ClientCommands struct {
	Auth    AuthCmd    `cmd:"" name:"auth" help:"Connect an app, printing the sign-in URL when required" group:"CLIENT"`
	Execute ExecuteCmd `cmd:"" name:"execute" help:"Execute a task" group:"CLIENT"`
	Tools   ToolsCmd   `cmd:"" name:"tools" help:"List tools" group:"CLIENT"`
	Tasks   TasksCmd   `cmd:"" name:"tasks" help:"List tasks" group:"CLIENT"`
}

type AuthCmd struct {
	App  string        `arg:"" optional:"" default:"googlesheets" help:"App to connect"`
	Wait time.Duration `name:"wait" help:"Wait for the connection to become active, or print the sign-in URL when zero"`
}

type ExecuteCmd struct {
	Task string `arg:"" optional:"" default:"github_star" help:"Task to execute"`
}

type ToolsCmd struct {
	App    []string `name:"app" help:"Filter by app"`
	Tag    []string `name:"tag" help:"Filter by tag"`
	Action []string `name:"action" help:"Filter by action"`
}

type TasksCmd struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *AuthCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	resp, err := client.Auth(ctx.ctx, ctx.EntityOpt(), httpclient.WithApp(cmd.App), httpclient.WithWait(uint(cmd.Wait.Seconds())))
	if err != nil {
		return err
	}
	if resp.RedirectURL != "" {
		fmt.Println(resp.Message)
		fmt.Println(resp.RedirectURL)
		return nil
	}
	fmt.Println(resp)
	return nil
}

func (cmd *ExecuteCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	resp, err := client.ExecuteTask(ctx.ctx, cmd.Task, ctx.EntityOpt())
	if err != nil {
		return err
	}
	if resp.RequiresAuth() {
		fmt.Println(resp.Message)
		fmt.Println(resp.RedirectURL)
		return nil
	}
	fmt.Println(resp)
	return nil
}

func (cmd *ToolsCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	resp, err := client.ListTools(ctx.ctx,
		httpclient.WithApps(cmd.App...),
		httpclient.WithTags(cmd.Tag...),
		httpclient.WithActions(cmd.Action...),
	)
	if err != nil {
		return err
	}
	fmt.Println(types.Stringify(resp))
	return nil
}

func (cmd *TasksCmd) Run(ctx *Globals) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}
	resp, err := client.ListTasks(ctx.ctx)
	if err != nil {
		return err
	}
	fmt.Println(types.Stringify(resp))
	return nil
}
