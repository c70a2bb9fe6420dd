package handlers

import (
	"context"
	"encoding/json"

	"tourdesk/models"
	"tourdesk/services/booking"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServeMCP exposes the tool set over MCP stdio, for agent runtimes that
// speak the protocol natively. The partner credential is fixed at startup
// since stdio has no per-request authentication.
func ServeMCP(ctx context.Context, tools *ToolSet, partner string) error {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tourdesk",
		Version: "1.0.0",
	}, nil)
	RegisterMCPTools(server, tools, partner)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RegisterMCPTools registers every tool on the MCP server; input schemas
// are inferred from the shared input structs.
func RegisterMCPTools(server *mcp.Server, t *ToolSet, partner string) {
	desc := make(map[string]string, len(Specs()))
	for _, spec := range Specs() {
		desc[spec.Name] = spec.Description
	}
	tool := func(name string) *mcp.Tool {
		return &mcp.Tool{Name: name, Description: desc[name]}
	}

	mcp.AddTool(server, tool(booking.ToolLookupSlots),
		func(ctx context.Context, req *mcp.CallToolRequest, in LookupSlotsInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.LookupSlots(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolGetSlotConfig),
		func(ctx context.Context, req *mcp.CallToolRequest, in SlotInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.GetSlotConfig(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolAnswerOptions),
		func(ctx context.Context, req *mcp.CallToolRequest, in AnswerOptionsInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.AnswerSlotOptions(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolGetSlotPricing),
		func(ctx context.Context, req *mcp.CallToolRequest, in SlotInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.GetSlotPricing(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolSetSlotPricing),
		func(ctx context.Context, req *mcp.CallToolRequest, in SetPricingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.SetSlotPricing(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolConfigureSlot),
		func(ctx context.Context, req *mcp.CallToolRequest, in ConfigureSlotInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.ConfigureSlot(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolCreateBooking),
		func(ctx context.Context, req *mcp.CallToolRequest, in CreateBookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.CreateBooking(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolAttachSlot),
		func(ctx context.Context, req *mcp.CallToolRequest, in AttachSlotInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.AttachSlot(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolGetQuestions),
		func(ctx context.Context, req *mcp.CallToolRequest, in BookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.GetBookingQuestions(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolAnswerQuestions),
		func(ctx context.Context, req *mcp.CallToolRequest, in AnswerQuestionsInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.AnswerBookingQuestions(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolGetPaymentInfo),
		func(ctx context.Context, req *mcp.CallToolRequest, in BookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.GetPaymentInfo(ctx, in, partner))
		})
	mcp.AddTool(server, tool(booking.ToolCommitBooking),
		func(ctx context.Context, req *mcp.CallToolRequest, in CommitInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.CommitBooking(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolWaitConfirm),
		func(ctx context.Context, req *mcp.CallToolRequest, in BookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.WaitConfirmation(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolGetStatus),
		func(ctx context.Context, req *mcp.CallToolRequest, in BookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.GetBookingStatus(ctx, in))
		})
	mcp.AddTool(server, tool(booking.ToolCancelBooking),
		func(ctx context.Context, req *mcp.CallToolRequest, in BookingInput) (*mcp.CallToolResult, any, error) {
			return callResult(t.CancelBooking(ctx, in))
		})
}

// callResult renders a ToolResult as MCP content, preserving the isError
// flag so MCP callers branch exactly like HTTP callers.
func callResult(r *models.ToolResult) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		IsError: r.IsError,
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
