package dsa

import (
	"context"
	"fmt"
	"strings"

	"abhinav/interview-coach/internal/llm"
)

// ExampleIO is one concrete input/output pair clarifying the problem.
type ExampleIO struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Question is one generated algorithm-design problem. The statement always
// ends with an explicit call for the candidate's approach and pseudocode.
type Question struct {
	QuestionTitle      string    `json:"question_title"`
	ProblemStatement   string    `json:"problem_statement"`
	Difficulty         string    `json:"difficulty"`
	ExpectedTopics     []string  `json:"expected_topics"`
	ExampleInputOutput ExampleIO `json:"example_input_output"`
}

var roleHints = map[string]string{
	"backend":  "Focus on algorithms related to strings, hashing, queues, optimization, and scalability.",
	"frontend": "Focus on string manipulation, simulation, parsing, and user interaction type problems.",
	"data":     "Focus on problems involving sorting, aggregation, graph traversal, and large-scale data handling.",
	"ml":       "Focus on matrix manipulation, graph algorithms, optimization, and dynamic programming.",
	"mobile":   "Focus on algorithmic problems suitable for app development such as search, caching, and offline storage efficiency.",
	"general":  "Focus on common DSA patterns like arrays, recursion, graphs, and dynamic programming.",
}

// GenerateQuestion asks the model for one role-appropriate algorithm design
// problem. Stateless: no session is opened.
func (e *Engine) GenerateQuestion(ctx context.Context, role, difficulty string) (*Question, error) {
	roleHint, ok := roleHints[strings.ToLower(role)]
	if !ok {
		roleHint = roleHints["general"]
	}

	prompt := fmt.Sprintf(`Create ONE algorithm design problem where the candidate must describe their approach and provide pseudocode.

IMPORTANT GUIDELINES:
- Present a clear problem that requires designing an algorithm to solve it
- Focus on WHAT needs to be solved, not HOW to implement it in any specific language
- The candidate should explain their algorithmic approach and write pseudocode (not actual code)
- Ask for step-by-step logic: what data structures to use, the algorithm steps, and complexity analysis
- Include concrete examples with input/output to clarify the problem
- Specify constraints (input size, value ranges, time/space requirements)
- The problem should test algorithmic thinking, not syntax knowledge
- End the problem statement with: "Describe your algorithm and provide pseudocode to solve this problem."

Role: %s
Difficulty: %s
Guidelines: %s

Return ONLY valid JSON in this exact format:
{
  "question_title": "string",
  "problem_statement": "string (the problem description ending with request for algorithm and pseudocode)",
  "difficulty": "easy|medium|hard",
  "expected_topics": ["topic1", "topic2"],
  "example_input_output": {
    "input": "string",
    "output": "string"
  }
}`, role, difficulty, roleHint)

	text, err := e.gateway.Generate(ctx, llm.Request{
		System:      "You are a strict DSA question generator that outputs ONLY JSON.",
		Prompt:      prompt,
		Temperature: dialogueTemperature,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate dsa question: %w", err)
	}

	var question Question
	if err := llm.DecodeJSON(text, &question); err != nil {
		return nil, err
	}
	if question.ProblemStatement == "" {
		return nil, fmt.Errorf("%w: missing problem_statement field", llm.ErrMalformedOutput)
	}

	return &question, nil
}
