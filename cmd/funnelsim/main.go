// Command funnelsim runs marketing funnel simulations from the command line.
package main

import "funnel-simulator/internal/cli"

func main() {
	cli.Execute()
}
