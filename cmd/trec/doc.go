// Command trec is the terminal session recorder CLI. It imports capture
// journals into a local library, edits recordings (trim, resize, dead-time
// compression), and replays them in the terminal.
package main
