package main

import "github.com/naka-gawa/issue-report/cmd"

func main() {
	cmd.Execute()
}
