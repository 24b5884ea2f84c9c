package main

import "milvus-server/cmd"

func main() {
	cmd.Execute()
}
