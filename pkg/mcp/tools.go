package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listThemesTool() mcp.Tool {
	return mcp.NewTool("list_themes",
		mcp.WithDescription("Returns the catalog's themes with their token counts"),
	)
}

func listTokensTool() mcp.Tool {
	return mcp.NewTool("list_tokens",
		mcp.WithDescription("Returns variable-bound token paths, optionally filtered by prefix"),
		mcp.WithString("prefix",
			mcp.Description("Only return token paths starting with this prefix"),
		),
	)
}

func searchTokensTool() mcp.Tool {
	return mcp.NewTool("search_tokens",
		mcp.WithDescription("Case-insensitive substring search across variable- and style-bound token paths"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to search for"),
		),
	)
}

func resolveTokenTool() mcp.Tool {
	return mcp.NewTool("resolve_token",
		mcp.WithDescription("Resolves a token path to its bound variables, styles, and effective value"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Token path, e.g. color.surface.action.primary.default"),
		),
	)
}

func resolveVariableTool() mcp.Tool {
	return mcp.NewTool("resolve_variable",
		mcp.WithDescription("Resolves a variable id to its token paths and effective value, following aliases"),
		mcp.WithString("variable_id",
			mcp.Required(),
			mcp.Description("Design-tool variable id"),
		),
	)
}

func resolvePhraseTool() mcp.Tool {
	return mcp.NewTool("resolve_phrase",
		mcp.WithDescription("Maps free text like 'apply surface accent color' to a token path, style reference, and guessed property"),
		mcp.WithString("phrase",
			mcp.Required(),
			mcp.Description("Free-text request"),
		),
	)
}

func matchNodeTool() mcp.Tool {
	return mcp.NewTool("match_node",
		mcp.WithDescription("Matches a node's property values (and structural children) against the token catalog"),
		mcp.WithString("node",
			mcp.Required(),
			mcp.Description("Node values as JSON: id, name, fills, strokes, paddings, corner_radius, children, ..."),
		),
		mcp.WithNumber("tolerance",
			mcp.Description("Numeric matching tolerance (default 2)"),
		),
	)
}
