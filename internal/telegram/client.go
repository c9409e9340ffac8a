package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Client is a minimal Telegram Bot API client: long polling in, messages
// and documents out.
type Client struct {
	token      string
	baseURL    string
	fileURL    string
	httpClient *http.Client
}

// New creates a new Telegram bot client
func New(token string) *Client {
	return &Client{
		token:   token,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL: fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
		// Long poll requests hold the connection open for up to the poll
		// timeout; leave headroom on top of it.
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// GetUpdates long-polls for new updates starting at offset
func (c *Client) GetUpdates(ctx context.Context, offset, timeoutSecs int) ([]Update, error) {
	url := fmt.Sprintf("%s/getUpdates?offset=%d&timeout=%d", c.baseURL, offset, timeoutSecs)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getUpdates request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read getUpdates response: %w", err)
	}

	var response getUpdatesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("parse getUpdates response: %w", err)
	}
	if !response.OK {
		return nil, fmt.Errorf("telegram api error on getUpdates")
	}

	return response.Result, nil
}

// SendMessage sends a plain text message
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text})
}

// SendMessageWithKeyboard sends a text message with an inline keyboard
func (c *Client) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard [][]InlineKeyboardButton) error {
	return c.sendMessage(ctx, sendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: &InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
}

func (c *Client) sendMessage(ctx context.Context, request sendMessageRequest) error {
	return c.postJSON(ctx, "sendMessage", request)
}

// AnswerCallbackQuery acknowledges an inline keyboard button press
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	return c.postJSON(ctx, "answerCallbackQuery", answerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

func (c *Client) postJSON(ctx context.Context, method string, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", method, err)
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp.Body, method)
}

// SendDocument uploads a document from memory via multipart form data
func (c *Client) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return err
		}
	}

	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/sendDocument", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendDocument request: %w", err)
	}
	defer resp.Body.Close()

	return decodeAPIResponse(resp.Body, "sendDocument")
}

// DownloadFile fetches the raw bytes of a file by its file id
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf("%s/getFile?file_id=%s", c.baseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getFile request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read getFile response: %w", err)
	}

	var fileResp getFileResponse
	if err := json.Unmarshal(body, &fileResp); err != nil {
		return nil, fmt.Errorf("parse getFile response: %w", err)
	}
	if !fileResp.OK || fileResp.Result == nil || fileResp.Result.FilePath == "" {
		return nil, fmt.Errorf("telegram api error on getFile")
	}

	downloadURL := fmt.Sprintf("%s/%s", c.fileURL, fileResp.Result.FilePath)
	dlReq, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}

	dlResp, err := c.httpClient.Do(dlReq)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer dlResp.Body.Close()

	if dlResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", dlResp.StatusCode)
	}

	return io.ReadAll(dlResp.Body)
}

func decodeAPIResponse(body io.Reader, method string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var response apiResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return fmt.Errorf("parse %s response: %w", method, err)
	}
	if !response.OK {
		return fmt.Errorf("telegram api error on %s: %s", method, response.Description)
	}
	return nil
}
