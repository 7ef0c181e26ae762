package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"growthpath_backend/internal/config"
	"growthpath_backend/pkg/monitoring"
	"io"
	"net/http"
	"strings"
	"time"
)

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"` // streaming responses
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const interviewerPreamble = "شما یک ارزیاب حرفه‌ای هستید که از طریق گفتگو کاربر را می‌سنجید. " +
	"در هر نوبت فقط یک پرسش کوتاه بپرسید و بر اساس پاسخ‌های قبلی پرسش بعدی را انتخاب کنید. " +
	"به فارسی و با لحن دوستانه صحبت کنید."

// analysisInstruction forces the closing analysis into machine-readable JSON.
// The shape is a convention, not a contract: the report engine tolerates
// models that drift from it.
const analysisInstruction = "گفتگو پایان یافته است. اکنون تحلیل نهایی را فقط به صورت یک شیء JSON معتبر " +
	"و بدون هیچ متن اضافه تولید کن، با کلیدهای زیر:\n" +
	`{"score": <number>, "max_score": <number>, "summary": "<string>", ` +
	`"factor_scores": [{"subject": "<string>", "score": <number>, "max_score": <number>}], ` +
	`"strengths": ["<string>"], "recommendations": ["<string>"], ` +
	`"development_plan": ["<string>"], "risks": ["<string>"]}` + "\n" +
	"همه متن‌ها به فارسی باشند."

func (s *AIService) buildMessages(systemContext string, history []AIChatMessage, prompt string) []AIChatMessage {
	system := interviewerPreamble
	if systemContext != "" {
		system = fmt.Sprintf("%s\n\nزمینه ارزیابی:\n%s", interviewerPreamble, systemContext)
	}

	messages := []AIChatMessage{{Role: "system", Content: system}}
	for _, h := range history {
		messages = append(messages, AIChatMessage{Role: h.Role, Content: h.Content})
	}
	if prompt != "" {
		messages = append(messages, AIChatMessage{Role: "user", Content: prompt})
	}
	return messages
}

func (s *AIService) complete(messages []AIChatMessage) (string, error) {
	start := time.Now()
	defer func() {
		monitoring.AIRequestDuration.Observe(time.Since(start).Seconds())
	}()

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}

	if len(result.Choices) > 0 {
		return result.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("AI returned no choices")
}

// Chat produces the interviewer's next turn.
func (s *AIService) Chat(systemContext string, history []AIChatMessage, prompt string) (string, error) {
	return s.complete(s.buildMessages(systemContext, history, prompt))
}

// ChatStream produces the interviewer's next turn as a token stream.
func (s *AIService) ChatStream(systemContext string, history []AIChatMessage, prompt string) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	messages := s.buildMessages(systemContext, history, prompt)

	reqBody := map[string]interface{}{
		"model":    s.config.Model,
		"messages": messages,
		"stream":   true,
	}

	jsonData, _ := json.Marshal(reqBody)

	go func() {
		defer close(out)
		defer close(errChan)

		req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			errChan <- err
			return
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
			return
		}

		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					errChan <- err
				}
				break
			}

			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				break
			}

			var streamResp ChatCompletionResponse
			if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
				continue
			}

			if len(streamResp.Choices) > 0 {
				content := streamResp.Choices[0].Delta.Content
				if content != "" {
					out <- content
				}
			}
		}
	}()

	return out, errChan
}

// GenerateAnalysis asks for the closing JSON analysis of a finished
// interview. The reply is returned raw; models sometimes wrap the JSON in a
// code fence, which stripCodeFence undoes.
func (s *AIService) GenerateAnalysis(systemContext string, history []AIChatMessage) (json.RawMessage, error) {
	reply, err := s.Chat(systemContext, history, analysisInstruction)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(stripCodeFence(reply)), nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag on the opening fence
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
