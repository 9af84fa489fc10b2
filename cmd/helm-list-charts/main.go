package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/macropower/helm-list-charts/cmd/helm-list-charts/commands"
)

const (
	cmdName = "helm-list-charts"

	shortDesc = "List the chart versions published in a Helm repository."
	longDesc  = `List the chart versions published in a Helm chart repository.

The repository index (index.yaml) is fetched from --source, optionally
filtered by chart name, chart type, and Kubernetes version, and printed as a
table with the newest version of each chart first. Long output is shown in
$PAGER when writing to a terminal.

Every flag may also be set with a HELM_LIST_CHARTS_<FLAG> environment
variable, e.g. HELM_LIST_CHARTS_SOURCE. Set NO_PAGER or
HELM_LIST_CHARTS_NO_PAGER to disable paging.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)
	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
