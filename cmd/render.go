package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
	"github.com/kestrelweb/kestrel/internal/layout"
	"github.com/kestrelweb/kestrel/internal/observability"
	"github.com/kestrelweb/kestrel/internal/protocol"
	"github.com/kestrelweb/kestrel/internal/style"
	"github.com/kestrelweb/kestrel/internal/uri"
)

var (
	renderCSSFile string
	renderWidth   int
	renderAt      string
	renderJSON    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <url>",
	Short: "Fetch a page and print its layout tree.",
	Long: `Render fetches the given URL (http, https or file), parses the HTML,
applies the user-agent stylesheet plus any <style> elements and an optional
extra sheet, and prints the resulting layout tree.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderCSSFile, "css", "", "additional stylesheet to apply after the page's own")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "viewport width in pixels (default from config)")
	renderCmd.Flags().StringVar(&renderAt, "at", "", "hit-test a point, e.g. --at 120,40")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "emit the layout tree as JSON")
	rootCmd.AddCommand(renderCmd)
}

func runRender(target string) error {
	logger := observability.GetLogger()

	u, err := uri.Parse(target, nil)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", target, err)
	}
	if u.Scheme == "" {
		// Bare paths are a convenience for local files.
		abs := target
		if !strings.HasPrefix(abs, "/") {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return wdErr
			}
			abs = wd + "/" + abs
		}
		u, err = uri.Parse("file://"+abs, nil)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", target, err)
		}
	}

	mux := protocol.NewMultiHandler()
	httpHandler := protocol.NewHTTPHandler(appCfg.Network.RequestTimeout, logger)
	mux.Add("http", httpHandler)
	mux.Add("https", httpHandler)
	mux.Add("file", protocol.NewFileHandler(logger))

	resp := mux.Handle(u)
	if resp.Err != protocol.ErrorOK {
		return fmt.Errorf("fetching %s: %s", u.String(), resp.Err)
	}
	logger.Debug("fetched document",
		zap.String("uri", u.String()),
		zap.Int("body_bytes", len(resp.Body)))

	doc, err := html.Parse(strings.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}
	root := findRootElement(doc)
	if root == nil {
		return fmt.Errorf("document has no root element")
	}

	sheet := style.UserAgentStylesheet()
	for _, text := range collectStyleText(root) {
		page := css.NewParser(text).Parse()
		sheet.Rules = append(sheet.Rules, page.Rules...)
	}
	if renderCSSFile != "" {
		extra, err := os.ReadFile(renderCSSFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", renderCSSFile, err)
		}
		user := css.NewParser(string(extra)).Parse()
		sheet.Rules = append(sheet.Rules, user.Rules...)
	}

	width := renderWidth
	if width <= 0 {
		width = appCfg.Viewport.Width
	}

	styled := style.StyleTree(root, sheet)
	box := layout.CreateLayout(styled, width)
	if box == nil {
		fmt.Fprintln(os.Stdout, "root element is display:none; nothing to lay out")
		return nil
	}

	if renderAt != "" {
		return printHit(box, renderAt)
	}
	if renderJSON {
		return printJSON(box)
	}
	fmt.Fprint(os.Stdout, layout.Dump(box))
	return nil
}

// findRootElement returns the first element child of the parsed document,
// normally the <html> node.
func findRootElement(doc *html.Node) *html.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// collectStyleText gathers the text content of every <style> element in
// document order.
func collectStyleText(n *html.Node) []string {
	var sheets []string
	if n.Type == html.ElementNode && n.Data == "style" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		sheets = append(sheets, sb.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sheets = append(sheets, collectStyleText(c)...)
	}
	return sheets
}

func printHit(root *layout.Box, at string) error {
	x, y, err := parsePoint(at)
	if err != nil {
		return err
	}
	hit := layout.BoxAtPosition(root, layout.Position{X: x, Y: y})
	if hit == nil {
		fmt.Fprintf(os.Stdout, "no box at %g,%g\n", x, y)
		return nil
	}
	name := "(anonymous)"
	if hit.StyledNode != nil {
		name = "<" + hit.StyledNode.TagName() + ">"
	}
	c := hit.Dimensions.Content
	fmt.Fprintf(os.Stdout, "%s %s {%g,%g %gx%g}\n", hit.Type, name, c.X, c.Y, c.Width, c.Height)
	return nil
}

func parsePoint(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid point %q, want X,Y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// boxJSON is the wire shape of one layout box.
type boxJSON struct {
	Type     string    `json:"type"`
	Tag      string    `json:"tag,omitempty"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Children []boxJSON `json:"children,omitempty"`
}

func toBoxJSON(b *layout.Box) boxJSON {
	out := boxJSON{
		Type:   b.Type.String(),
		X:      b.Dimensions.Content.X,
		Y:      b.Dimensions.Content.Y,
		Width:  b.Dimensions.Content.Width,
		Height: b.Dimensions.Content.Height,
	}
	if b.StyledNode != nil {
		out.Tag = b.StyledNode.TagName()
	}
	for _, child := range b.Children {
		out.Children = append(out.Children, toBoxJSON(child))
	}
	return out
}

func printJSON(root *layout.Box) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary
	data, err := enc.MarshalIndent(toBoxJSON(root), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
