// Command webcrawl crawls a documentation site and converts it to Markdown.
package main

import (
	cmd "github.com/oss-crawler/webcrawl/internal/cli"
)

func main() {
	cmd.Execute()
}
