package main

import "github.com/lethalbit/libnokogiri/cmd/pcapdump/cmd"

func main() {
	cmd.Execute()
}
