package main

import "github.com/jmehdipour/order-insights/cmd"

func main() {
	cmd.Execute()
}
