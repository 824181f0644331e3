package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Title  string // Page title
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: "force",
		Title:  "Citation Graph",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page for the graph.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := ValidateLayout(opts.Layout); err != nil {
		return "", err
	}
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	graphJSON, err := graph.ToCytoscapeJSON()
	if err != nil {
		return "", err
	}

	data := templateData{
		Title:     opts.Title,
		Empty:     graph.IsEmpty(),
		NodeCount: len(graph.Nodes),
		EdgeCount: len(graph.Edges),
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ValidateLayout checks if the layout option is valid. Empty means force.
func ValidateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	Empty     bool
	NodeCount int
	EdgeCount int
	GraphJSON template.JS
	Layout    string
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #summary {
      position: absolute;
      top: 8px;
      left: 12px;
      font-size: 12px;
      color: #666;
      z-index: 10;
    }
    .empty-state {
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      color: #666;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .label {
      font-weight: bold;
      margin-bottom: 4px;
    }
    #tooltip .detail {
      color: #555;
      margin: 2px 0;
    }
  </style>
</head>
<body>
{{if .Empty}}
  <div class="empty-state">
    <div>
      <h2>No papers left</h2>
      <p>The graph is empty. Pruning removed every node, or the input had no records.</p>
    </div>
  </div>
{{else}}
  <div id="summary">{{.NodeCount}} papers, {{.EdgeCount}} citations</div>
  <div id="cy"></div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': '#D9534F',
              'label': 'data(label)',
              'color': '#333',
              'font-size': '10px',
              'text-valign': 'bottom',
              'text-margin-y': '5px',
              'width': 'data(size)',
              'height': 'data(size)'
            }
          },
          // Citations are drawn as plain lines
          {
            selector: 'edge',
            style: {
              'line-color': '#95A5A6',
              'target-arrow-shape': 'none',
              'curve-style': 'bezier',
              'width': 1
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#333'
            }
          },
          {
            selector: '.dimmed',
            style: {
              'opacity': 0.2
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 100,
          edgeElasticity: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      function escapeHtml(str) {
        if (!str) return '';
        return String(str).replace(/&/g, '&amp;')
                          .replace(/</g, '&lt;')
                          .replace(/>/g, '&gt;')
                          .replace(/"/g, '&quot;');
      }

      function getNodeTooltip(node) {
        const data = node.data();
        let html = '<div class="label">' + escapeHtml(data.label) + '</div>';
        if (data.title) html += '<div class="detail">' + escapeHtml(data.title) + '</div>';
        if (data.label !== data.id) html += '<div class="detail">ID: ' + escapeHtml(data.id) + '</div>';
        html += '<div class="detail">Weight: ' + data.weight + '</div>';
        html += '<div class="detail">Degree: ' + data.degree + '</div>';
        return html;
      }

      cy.on('mouseover', 'node', function(evt) {
        tooltip.innerHTML = getNodeTooltip(evt.target);
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      });

      cy.on('mouseout', 'node', function() {
        tooltip.style.display = 'none';
      });

      cy.on('tap', 'node', function(evt) {
        const neighborhood = evt.target.closedNeighborhood();
        cy.elements().removeClass('highlighted dimmed');
        neighborhood.nodes().addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
{{end}}
</body>
</html>`
