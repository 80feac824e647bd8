package cli

import "github.com/fatih/color"

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	outputStyle = color.New(color.FgGreen)
	errorStyle  = color.New(color.FgRed, color.Bold)
	mutedStyle  = color.New(color.FgHiBlack)
)

const bullet = "•"
