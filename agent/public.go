package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/Triton1605/Infinity/store"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the price history of the assets he tracks:
			stocks, crypto, currencies and commodities, and the charts he has saved in his projects.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.

			The user will assume that you know about his tracked assets and saved projects,
			check them first with the Analyst to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounding answers in web search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products, exchanges and crypto markets,
		and about the latest news on companies and assets.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find about anything related to
			companies, exchanges, crypto assets, currencies and commodities. You leverage Google Search
			to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the user's tracked assets and
// saved chart projects. It answers from local data only, never the web.
func NewAnalyst(st *store.Store, projectsDir string) *Expert {

	a := &analyst{store: st, projectsDir: projectsDir}
	lib := []Function{a.trackedAssets(), a.assetSummary(), a.projects(), a.chartData()}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He has access to the user's locally tracked assets
		and saved chart projects. He can list the assets with their latest prices, summarize
		one asset's history, list and describe the saved projects, and compute the data table
		behind any chart in a project.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's tracked assets and chart projects.
				You know how to use the Tools to extract relevant information from the local data.
				You are part of a team of experts, yours is everything stored locally. They might
				ask you questions about the user's assets, pardon their approximative language and
				figure out what they meant.

				Use the available tools to get information about
				  - the tracked assets and their latest prices
				  - one asset's price history
				  - the saved projects and the charts they contain
				  - the data behind one chart, after exclusions and resampling
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// analyst holds the local data the Analyst's functions answer from.
type analyst struct {
	store       *store.Store
	projectsDir string
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func (a *analyst) trackedAssets() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "TrackedAssets",
			Description: `TrackedAssets lists all locally tracked assets with their class, currency and latest known price.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all tracked assets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			assets, err := a.store.List()
			if err != nil {
				return errResponse(id, "TrackedAssets", err)
			}
			return okResponse(id, "TrackedAssets", renderer.AssetList(assets))
		},
	}
}

func (a *analyst) assetSummary() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "AssetSummary",
			Description: `AssetSummary describes one tracked asset: name, currency, exchange,
			the date range of its stored history, and its latest price.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"asset": {
						Type:        genai.TypeString,
						Description: `The asset identifier, symbol dot class: "AAPL.equity", "BTC.crypto".`,
					},
				},
				Required: []string{"asset"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted summary of the asset.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			aid, err := parseAssetArg(args)
			if err != nil {
				return errResponse(id, "AssetSummary", err)
			}
			assets, err := a.store.List()
			if err != nil {
				return errResponse(id, "AssetSummary", err)
			}
			for _, asset := range assets {
				if asset.ID == aid {
					return okResponse(id, "AssetSummary", renderer.AssetSummary(asset))
				}
			}
			return errResponse(id, "AssetSummary", fmt.Errorf("asset %q is not tracked", aid))
		},
	}
}

func (a *analyst) projects() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Projects",
			Description: `Projects lists the saved chart projects, or describes one project in
			detail when a name is given: its charts with their assets, resolution, time range
			and exclusion rules.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The project name. Omit it to list all projects.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of projects, or the detail of one project.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, _ := args["name"].(string)
			if name == "" {
				entries, err := a.listProjects()
				if err != nil {
					return errResponse(id, "Projects", err)
				}
				return okResponse(id, "Projects", renderer.ProjectList(entries))
			}
			p, _, err := a.loadProject(name)
			if err != nil {
				return errResponse(id, "Projects", err)
			}
			return okResponse(id, "Projects", renderer.Project(p))
		},
	}
}

func (a *analyst) chartData() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ChartData",
			Description: `ChartData computes the data table behind one chart of a project:
			the shared time axis and one column per asset, after exclusions, resampling and
			time-range trimming. Assets whose data could not be fetched are listed as
			unavailable, with the rest of the chart intact.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"project": {
						Type:        genai.TypeString,
						Description: "The project name.",
					},
					"chart": {
						Type:        genai.TypeNumber,
						Description: "The zero-based index of the chart in the project. Defaults to 0.",
					},
				},
				Required: []string{"project"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted data table for the chart.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, _ := args["project"].(string)
			p, _, err := a.loadProject(name)
			if err != nil {
				return errResponse(id, "ChartData", err)
			}
			index := 0
			if n, ok := args["chart"].(float64); ok {
				index = int(n)
			}
			spec, ok := p.Spec(index)
			if !ok {
				return errResponse(id, "ChartData", fmt.Errorf("project %q has no chart %d", name, index))
			}
			d, err := infinity.NewAssembler(a.store).Assemble(ctx, spec)
			if err != nil {
				return errResponse(id, "ChartData", err)
			}
			return okResponse(id, "ChartData", renderer.Dataset(spec.Title(), d))
		},
	}
}

func (a *analyst) listProjects() ([]renderer.ProjectEntry, error) {
	files, err := filepath.Glob(filepath.Join(a.projectsDir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	entries := make([]renderer.ProjectEntry, 0, len(files))
	for _, file := range files {
		e := renderer.ProjectEntry{File: file}
		e.Project, _, e.Err = decodeProjectFile(file)
		entries = append(entries, e)
	}
	return entries, nil
}

func (a *analyst) loadProject(name string) (*infinity.Project, []*infinity.ConfigurationError, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("missing project name")
	}
	file := filepath.Join(a.projectsDir, name+".json")
	return decodeProjectFile(file)
}

func decodeProjectFile(file string) (*infinity.Project, []*infinity.ConfigurationError, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open project file %q: %w", file, err)
	}
	defer f.Close()
	return infinity.DecodeProject(f)
}

func parseAssetArg(args map[string]any) (infinity.AssetID, error) {
	raw, ok := args["asset"].(string)
	if !ok {
		return infinity.AssetID{}, fmt.Errorf("argument 'asset' is not a string as expected but %T", args["asset"])
	}
	return infinity.ParseAssetID(raw)
}
