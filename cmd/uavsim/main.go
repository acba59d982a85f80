package main

import "github.com/wanghhhaoo/Multi-hop-Offloading/internal/cli"

func main() {
	cli.Execute()
}
