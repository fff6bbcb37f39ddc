package config

// Default returns the built-in configuration: fifteen agents composed into
// the six stock workflows, dispatching to the router by default.
func Default() *Config {
	cfg := &Config{
		DefaultWorkflow: "router_workflow",
		Agents: []AgentConfig{
			// chaining_workflow
			{
				Name:        "url_summarizer",
				Instruction: "Given a URL or text, provide a complete and comprehensive summary",
				Tools:       []string{"fetch"},
			},
			{
				Name:        "content_writer",
				Instruction: "Write a social media post (280 chars) from given text. Respond only with the post, no hashtags.",
			},

			// parallel_workflow
			{
				Name:        "proofreader",
				Instruction: "Review text for grammar, spelling, punctuation and phrasing errors. Provide detailed feedback.",
			},
			{
				Name:        "fact_checker",
				Instruction: "Verify factual consistency and logical coherence. Identify contradictions or inaccuracies.",
			},
			{
				Name:        "style_enforcer",
				Instruction: "Analyze narrative flow, clarity of expression, and tone. Suggest improvements for readability.",
				Model:       "anthropic:claude-3-5-sonnet-20241022",
			},
			{
				Name:        "quality_grader",
				Instruction: "Compile feedback from proofreader, fact_checker, and style_enforcer. Provide overall grade and recommendations.",
			},

			// router_workflow candidates
			{
				Name:        "code_analyst",
				Instruction: "You are an expert in code analysis. Analyze code quality, architecture, and best practices.",
				Model:       "anthropic:claude-3-5-haiku-20241022",
				Tools:       []string{"filesystem"},
			},
			{
				Name:        "web_researcher",
				Instruction: "You are a research assistant that fetches and analyzes web content.",
				Model:       "anthropic:claude-3-5-haiku-20241022",
				Tools:       []string{"fetch"},
			},
			{
				Name:        "general_assistant",
				Instruction: "You are a knowledgeable assistant answering general questions clearly.",
				Model:       "anthropic:claude-3-5-haiku-20241022",
			},

			// orchestrator_workflow
			{
				Name:        "task_planner",
				Instruction: "You are a project planner. Break down complex tasks into steps and assign them to appropriate agents.",
				Tools:       []string{"filesystem"},
			},
			{
				Name:        "executor",
				Instruction: "You execute tasks assigned to you. Use available tools to complete work.",
				Tools:       []string{"filesystem", "fetch"},
			},
			{
				Name:        "reviewer",
				Instruction: "Review completed work for quality, completeness and alignment with requirements.",
			},

			// evaluator_optimizer_workflow
			{
				Name:        "content_generator",
				Instruction: "Generate high-quality content based on requirements.",
				Model:       "openai:gpt-4o-mini",
				UseHistory:  true,
			},
			{
				Name: "quality_evaluator",
				Instruction: "Evaluate content on:\n" +
					"1. Clarity and grammar\n" +
					"2. Relevance and specificity\n" +
					"3. Tone and style appropriateness\n" +
					"4. Completeness\n\n" +
					"Provide ratings (EXCELLENT/GOOD/FAIR/POOR) and specific feedback.",
				Model: "openai:o3-mini",
			},

			// human_input_workflow
			{
				Name:        "simple_assistant",
				Instruction: "You are a helpful assistant that answers questions clearly and concisely.",
			},
		},
		Workflows: []WorkflowConfig{
			{
				Name:     "chaining_workflow",
				Type:     TypeChain,
				Sequence: []string{"url_summarizer", "content_writer"},
			},
			{
				Name:   "parallel_workflow",
				Type:   TypeParallel,
				FanOut: []string{"proofreader", "fact_checker", "style_enforcer"},
				FanIn:  "quality_grader",
			},
			{
				Name:       "router_workflow",
				Type:       TypeRouter,
				Candidates: []string{"code_analyst", "web_researcher", "general_assistant"},
				Model:      "anthropic:claude-3-5-sonnet-20241022",
			},
			{
				Name:          "orchestrator_workflow",
				Type:          TypePlanner,
				Planner:       "task_planner",
				Executor:      "executor",
				Reviewer:      "reviewer",
				MaxIterations: 3,
			},
			{
				Name:      "evaluator_optimizer_workflow",
				Type:      TypeEvaluator,
				Generator: "content_generator",
				Evaluator: "quality_evaluator",
				MinRating: "EXCELLENT",
			},
			{
				Name:     "human_input_workflow",
				Type:     TypeChain,
				Sequence: []string{"simple_assistant"},
			},
		},
	}
	cfg.SetDefaults()
	return cfg
}
