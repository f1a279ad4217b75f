package main

import "github.com/borderlesspc7/281-carlos/pkg/interfaces/cli"

func main() {
	cli.Execute()
}
