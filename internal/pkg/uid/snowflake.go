package uid

import (
	"os"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs using the snowflake layout.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a Snowflake generator. The node number is derived from
// the process ID so that co-located instances do not collide.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(int64(os.Getpid()) % 1024)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new int64 ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
