package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var processToolDef = mcp.NewTool("tender_process",
	mcp.WithDescription("Process tender documents through the extraction pipeline: normalize text, locate the specification section, extract specs and important info, resolve the tender ID, and persist the result. With no arguments, processes every .txt file in the drop directory."),
	mcp.WithString("file",
		mcp.Description("Process a single file from the drop directory instead of the whole folder."),
	),
	mcp.WithString("text",
		mcp.Description("Process raw text directly instead of reading from the drop directory."),
	),
	mcp.WithString("filename",
		mcp.Description("Filename to associate with raw text, used for tender ID resolution."),
	),
	mcp.WithBoolean("no_links",
		mcp.Description("Skip linked documents found beside each main file."),
	),
)

var scanToolDef = mcp.NewTool("tender_scan",
	mcp.WithDescription("Run extraction over raw text without persisting anything: located section size, specification records, and important-info fields."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Document text to scan."),
	),
)

var resolveIDToolDef = mcp.NewTool("tender_resolve_id",
	mcp.WithDescription("Resolve a tender identifier from a filename and document text via the pattern cascade, generating a sequential ID when nothing matches."),
	mcp.WithString("filename",
		mcp.Description("Source filename. A clean token-shaped stem is used verbatim."),
	),
	mcp.WithString("text",
		mcp.Description("Document text searched for RFP/RFQ, tender-number, bid-number, marketplace, and generic reference patterns."),
	),
	mcp.WithBoolean("no_generate",
		mcp.Description("Report NOT_FOUND instead of generating an ID when nothing matches."),
	),
)

var classifyToolDef = mcp.NewTool("tender_classify",
	mcp.WithDescription("Decide whether a message or text blob is tender-related. Provide subject/body (message mode) or text (blob mode)."),
	mcp.WithString("subject",
		mcp.Description("Message subject line."),
	),
	mcp.WithString("body",
		mcp.Description("Message body."),
	),
	mcp.WithString("sender",
		mcp.Description("Message sender address."),
	),
	mcp.WithBoolean("has_pdf",
		mcp.Description("Whether the message carries a PDF attachment."),
	),
	mcp.WithString("text",
		mcp.Description("Bare text blob to classify without subject/attachment context."),
	),
)

var fetchToolDef = mcp.NewTool("tender_fetch",
	mcp.WithDescription("Retrieve one processed tender record by its tender ID."),
	mcp.WithString("tender_id",
		mcp.Required(),
		mcp.Description("Tender identifier, e.g. RFP-2025-0042 or GEM/2025/B/1234567."),
	),
	mcp.WithBoolean("from_file",
		mcp.Description("Read the JSON output record from disk instead of the database index."),
	),
)

var listToolDef = mcp.NewTool("tender_list",
	mcp.WithDescription("List processed tenders, most recently updated first. Technical specifications are elided; use tender_fetch for the full record."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum records to return (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Records to skip, for pagination."),
	),
)

var reportToolDef = mcp.NewTool("tender_report",
	mcp.WithDescription("Write a Markdown summary report of processed tenders under the output directory, optionally with a rendered HTML copy."),
	mcp.WithNumber("limit",
		mcp.Description("Cap how many tenders the report covers (most recent first)."),
	),
	mcp.WithBoolean("html",
		mcp.Description("Additionally write the rendered HTML file."),
	),
)
