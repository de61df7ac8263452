// Copyright 2026 Abir4testing
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func apiBaseURL() string {
	if u := os.Getenv("PDFSHARE_API_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(apiBaseURL()).
		SetTimeout(60 * time.Second)
}

func checkHealth() (map[string]interface{}, error) {
	var out map[string]interface{}
	resp, err := newClient().R().
		SetResult(&out).
		Get("/api/health")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /api/health: %s", resp.String())
	}
	return out, nil
}

func uploadPDF(ownerName, filePath, password string) (map[string]interface{}, error) {
	fields := map[string]string{"ownerName": ownerName}
	if password != "" {
		fields["password"] = password
	}
	var out map[string]interface{}
	resp, err := newClient().R().
		SetFile("file", filePath).
		SetFormData(fields).
		SetResult(&out).
		Post("/api/upload")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("POST /api/upload: %s", resp.String())
	}
	return out, nil
}

func searchPDFs(ownerName string) ([]map[string]interface{}, error) {
	var out struct {
		PDFs []map[string]interface{} `json:"pdfs"`
	}
	resp, err := newClient().R().
		SetQueryParam("ownerName", ownerName).
		SetResult(&out).
		Get("/api/search")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /api/search: %s", resp.String())
	}
	return out.PDFs, nil
}

func fetchPDF(ownerName, filename, password string) ([]byte, error) {
	req := newClient().R()
	if password != "" {
		req.SetQueryParam("password", password)
	}
	resp, err := req.Get("/api/pdf/" + ownerName + "/" + filename)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /api/pdf/%s/%s: %s", ownerName, filename, resp.String())
	}
	return resp.Body(), nil
}

func downloadPDF(fileID, password string) ([]byte, error) {
	body := map[string]string{"fileId": fileID}
	if password != "" {
		body["password"] = password
	}
	resp, err := newClient().R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/pdf/download")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("POST /api/pdf/download: %s", resp.String())
	}
	return resp.Body(), nil
}

func verifyPassword(fileID, password string) error {
	resp, err := newClient().R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"fileId": fileID, "password": password}).
		Post("/api/pdf/verify-password")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("POST /api/pdf/verify-password: %s", resp.String())
	}
	return nil
}
