package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/homemadechefs/chefcms/internal/models"
)

// articleView is what the templates render per article.
type articleView struct {
	Title     string
	Excerpt   string
	HeroImage string
	URL       string
}

type emailData struct {
	Articles []articleView
	BaseURL  string
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Welcome to Homemade Chefs</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;background-color:#FDFBF7;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#FDFBF7;">
<tr><td align="center" style="padding:40px 20px;">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;">
<tr><td style="background-color:#0F1E19;padding:40px 30px;text-align:center;">
<h1 style="color:#ffffff;font-size:32px;margin:0 0 10px 0;">Welcome to Homemade Chefs!</h1>
<p style="color:#E6DCC3;font-size:16px;margin:0;">Thank you for subscribing to our newsletter</p>
</td></tr>
<tr><td style="padding:40px 30px;">
<p style="color:#0F1E19;font-size:16px;line-height:1.6;margin:0 0 20px 0;">
We're thrilled to have you join our community of passionate home chefs. You'll now receive exclusive updates, cooking tips, and inspiring stories directly to your inbox.
</p>
<p style="color:#0F1E19;font-size:16px;line-height:1.6;margin:0 0 30px 0;">
To get you started, here are some of our most popular articles:
</p>
</td></tr>
{{range .Articles}}
<tr><td style="padding:0 30px 30px 30px;">
<table width="100%" cellpadding="0" cellspacing="0" style="border:1px solid #E6DCC3;border-radius:12px;overflow:hidden;">
{{if .HeroImage}}<tr><td><img src="{{.HeroImage}}" alt="{{.Title}}" style="width:100%;height:200px;object-fit:cover;display:block;"></td></tr>{{end}}
<tr><td style="padding:20px;">
<h3 style="color:#0F1E19;font-size:20px;margin:0 0 10px 0;">{{.Title}}</h3>
<p style="color:#666;font-size:14px;line-height:1.5;margin:0 0 15px 0;">{{.Excerpt}}</p>
<a href="{{.URL}}" style="display:inline-block;background-color:#F47A44;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:8px;font-weight:bold;font-size:14px;">Read More</a>
</td></tr>
</table>
</td></tr>
{{end}}
<tr><td style="padding:30px;text-align:center;background-color:#0F1E19;">
<p style="color:#E6DCC3;font-size:14px;margin:0 0 15px 0;">Turn your cooking creations into revenue</p>
<p style="color:#999;font-size:12px;margin:0;">
&copy; Homemade Chefs. All rights reserved.<br>
<a href="{{.BaseURL}}/unsubscribe" style="color:#999;text-decoration:underline;">Unsubscribe</a>
</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`))

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Your Weekly Chef Digest</title>
</head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;background-color:#FDFBF7;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#FDFBF7;">
<tr><td align="center" style="padding:40px 20px;">
<table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:16px;overflow:hidden;">
<tr><td style="background-color:#0F1E19;padding:40px 30px;text-align:center;">
<h1 style="color:#ffffff;font-size:28px;margin:0 0 10px 0;">Your Weekly Chef Digest</h1>
<p style="color:#E6DCC3;font-size:16px;margin:0;">Fresh articles picked for you</p>
</td></tr>
{{range .Articles}}
<tr><td style="padding:0 30px 30px 30px;">
<table width="100%" cellpadding="0" cellspacing="0" style="background-color:#F8F6F3;border-radius:12px;overflow:hidden;">
{{if .HeroImage}}<tr><td><img src="{{.HeroImage}}" alt="{{.Title}}" style="width:100%;height:200px;object-fit:cover;display:block;"></td></tr>{{end}}
<tr><td style="padding:20px;">
<h3 style="color:#0F1E19;font-size:20px;margin:0 0 10px 0;">{{.Title}}</h3>
<p style="color:#666;font-size:14px;line-height:1.5;margin:0 0 15px 0;">{{.Excerpt}}</p>
<a href="{{.URL}}" style="display:inline-block;background-color:#F47A44;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:8px;font-weight:bold;font-size:14px;">Read More</a>
</td></tr>
</table>
</td></tr>
{{end}}
<tr><td style="padding:30px;text-align:center;background-color:#0F1E19;">
<p style="color:#E6DCC3;font-size:14px;margin:0 0 15px 0;">Turn your cooking creations into revenue</p>
<p style="color:#999;font-size:12px;margin:0;">
&copy; Homemade Chefs. All rights reserved.<br>
<a href="{{.BaseURL}}/unsubscribe" style="color:#999;text-decoration:underline;">Unsubscribe</a>
</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`))

// RenderWelcome renders the welcome email body for the given articles
func RenderWelcome(articles []*models.ContentItem, baseURL string) (string, error) {
	return render(welcomeTemplate, articles, baseURL)
}

// RenderDigest renders the weekly digest email body for the given articles
func RenderDigest(articles []*models.ContentItem, baseURL string) (string, error) {
	return render(digestTemplate, articles, baseURL)
}

// DigestSubject returns the dated subject line for a digest sent at t
func DigestSubject(t time.Time) string {
	return fmt.Sprintf("Your Weekly Chef Digest - %s", t.Format("January 2"))
}

// WelcomeSubject is the welcome email subject line.
const WelcomeSubject = "Welcome to Homemade Chefs!"

func render(tmpl *template.Template, articles []*models.ContentItem, baseURL string) (string, error) {
	data := emailData{BaseURL: strings.TrimRight(baseURL, "/")}
	for _, a := range articles {
		view := articleView{
			Title:   a.Title,
			Excerpt: a.Excerpt,
			URL:     fmt.Sprintf("%s/blog/%s", data.BaseURL, a.Slug),
		}
		if a.HeroImage != nil {
			view.HeroImage = *a.HeroImage
		}
		data.Articles = append(data.Articles, view)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template: %w", err)
	}
	return buf.String(), nil
}
