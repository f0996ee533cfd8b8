package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string. Used for
// account, property, category, office and favorite ids.
func NewKSUID() string {
	return ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
	nodeErr  error
)

// snowflakeNode initializes the process-wide generator node exactly
// once. The node carries the per-millisecond sequence counter, so it
// must be shared by every caller; a fresh node per call would restart
// the sequence and repeat ids within the same millisecond.
func snowflakeNode() (*snowflake.Node, error) {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	return node, nodeErr
}

// NewSnowflakeID generates a snowflake ID string from the shared node,
// using the node ID in SNOWFLAKE_NODE (default 1). Snowflake ids sort
// by creation time, which is why chat messages use them. If the node
// cannot be initialized, it falls back to a KSUID string so a unique
// ID is still returned.
func NewSnowflakeID() string {
	n, err := snowflakeNode()
	if err != nil {
		return NewKSUID()
	}
	return n.Generate().String()
}
