package biliserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all Bilibili tools on the given MCP server:
// bili_summary, bili_video_info, bili_resolve_id.
func RegisterTools(server *mcp.Server) {
	registerSummary(server)
	registerVideoInfo(server)
	registerResolveID(server)
}
