package commands

import (
	"time"
)

type RootArgs struct {
	logLevel       *string
	logFormat      *string
	source         *string
	chart          *string
	chartType      *string
	match          *string
	kubeVersion    *string
	output         *string
	maxIndexSize   *string
	timeout        *time.Duration
	pagerThreshold *int
	noPager        *bool
	noColor        *bool
	strict         *bool
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:       new(string),
		logFormat:      new(string),
		source:         new(string),
		chart:          new(string),
		chartType:      new(string),
		match:          new(string),
		kubeVersion:    new(string),
		output:         new(string),
		maxIndexSize:   new(string),
		timeout:        new(time.Duration),
		pagerThreshold: new(int),
		noPager:        new(bool),
		noColor:        new(bool),
		strict:         new(bool),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetSource() string {
	return *a.source
}

func (a *RootArgs) GetChart() string {
	return *a.chart
}

func (a *RootArgs) GetChartType() string {
	return *a.chartType
}

func (a *RootArgs) GetMatch() string {
	return *a.match
}

func (a *RootArgs) GetKubeVersion() string {
	return *a.kubeVersion
}

func (a *RootArgs) GetOutput() string {
	return *a.output
}

func (a *RootArgs) GetMaxIndexSize() string {
	return *a.maxIndexSize
}

func (a *RootArgs) GetTimeout() time.Duration {
	return *a.timeout
}

func (a *RootArgs) GetPagerThreshold() int {
	return *a.pagerThreshold
}

func (a *RootArgs) GetNoPager() bool {
	return *a.noPager
}

func (a *RootArgs) GetNoColor() bool {
	return *a.noColor
}

func (a *RootArgs) GetStrict() bool {
	return *a.strict
}
