package service

import "github.com/superplace/growth-report-api/internal/models"

// starterTemplates is the built-in catalog installed on first boot. The
// ids are stable across versions so reseeding recognises existing rows.
func starterTemplates() []models.Template {
	return []models.Template{
		{
			ID:          "tpl_student_report_001",
			Name:        "Student Growth Report",
			Description: strPtr("Premium report showing a student's learning results and growth"),
			Body:        `<!DOCTYPE html><html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>{{studentName}} Growth Report</title><style>body{font-family:system-ui;max-width:800px;margin:0 auto;padding:20px;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%)}.container{background:#fff;padding:40px;border-radius:12px}h1{color:#667eea;font-size:32px;margin-bottom:8px}.subtitle{color:#6b7280;font-size:18px;margin-bottom:30px}.stats{display:grid;grid-template-columns:repeat(3,1fr);gap:20px;margin:30px 0}.stat-card{background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);color:#fff;padding:20px;border-radius:8px;text-align:center}.stat-value{font-size:36px;font-weight:700}.stat-label{font-size:14px;opacity:.9;margin-top:8px}.section-title{font-size:20px;font-weight:700;margin:30px 0 16px;border-left:4px solid #667eea;padding-left:12px}.comment{background:#f9fafb;padding:20px;border-radius:8px;border-left:4px solid #667eea;line-height:1.6}footer{text-align:center;margin-top:40px;padding-top:20px;border-top:1px solid #e5e7eb;color:#6b7280}</style></head><body><div class="container"><h1>{{studentName}} Growth Report</h1><div class="subtitle">Learning results for {{period}}</div><div class="stats"><div class="stat-card"><div class="stat-value">{{attendanceRate}}%</div><div class="stat-label">Attendance</div></div><div class="stat-card"><div class="stat-value">{{homeworkRate}}%</div><div class="stat-label">Homework completion</div></div><div class="stat-card"><div class="stat-value">{{avgScore}}</div><div class="stat-label">Average score</div></div></div><div class="section-title">Teacher comment</div><div class="comment">{{teacherComment}}</div><footer><p>Provided by {{academyName}}.</p><p style="font-size:12px;margin-top:8px">Generated on {{generatedDate}}</p></footer></div></body></html>`,
			IsDefault:   true,
		},
		{
			ID:          "tpl_academy_intro_001",
			Name:        "Modern Academy Introduction",
			Description: strPtr("Polished landing page introducing the academy"),
			Body:        `<!DOCTYPE html><html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>{{academyName}}</title><style>*{margin:0;padding:0;box-sizing:border-box}body{font-family:system-ui}header{background:linear-gradient(135deg,#4f46e5 0%,#7c3aed 100%);color:#fff;padding:60px 20px;text-align:center}h1{font-size:48px;margin-bottom:16px}p{font-size:18px;opacity:.9}.container{max-width:1200px;margin:0 auto;padding:60px 20px}.features{display:grid;grid-template-columns:repeat(auto-fit,minmax(300px,1fr));gap:30px;margin:40px 0}.feature-card{background:#fff;padding:30px;border-radius:12px;box-shadow:0 2px 10px rgba(0,0,0,.1)}.feature-title{font-size:20px;font-weight:700;margin-bottom:12px}.feature-desc{color:#6b7280;line-height:1.6}.cta{text-align:center;margin-top:60px}.cta-button{display:inline-block;background:linear-gradient(135deg,#4f46e5 0%,#7c3aed 100%);color:#fff;padding:16px 48px;border-radius:8px;text-decoration:none;font-size:18px;font-weight:700}</style></head><body><header><h1>{{academyName}}</h1><p>{{tagline}}</p></header><div class="container"><div class="features"><div class="feature-card"><div class="feature-title">Structured curriculum</div><div class="feature-desc">{{feature1}}</div></div><div class="feature-card"><div class="feature-title">Expert instructors</div><div class="feature-desc">{{feature2}}</div></div><div class="feature-card"><div class="feature-title">Personalised coaching</div><div class="feature-desc">{{feature3}}</div></div></div><div class="cta"><a href="#contact" class="cta-button">Book a free consultation</a></div></div></body></html>`,
		},
		{
			ID:          "tpl_event_001",
			Name:        "Event and Seminar",
			Description: strPtr("Announcement page for special events and seminars"),
			Body:        `<!DOCTYPE html><html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>{{eventTitle}}</title><style>body{font-family:system-ui;margin:0;background:linear-gradient(135deg,#ff6b6b 0%,#ee5a6f 100%);color:#fff}.container{max-width:800px;margin:0 auto;padding:40px 20px;text-align:center}.badge{display:inline-block;background:rgba(255,255,255,.2);padding:8px 20px;border-radius:20px;font-size:14px;margin-bottom:20px}h1{font-size:48px;margin-bottom:16px}.date{font-size:24px;margin:20px 0;opacity:.9}.description{font-size:18px;line-height:1.8;margin:30px 0;background:rgba(255,255,255,.1);padding:30px;border-radius:12px}.highlights{display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));gap:20px;margin:40px 0}.highlight{background:rgba(255,255,255,.15);padding:20px;border-radius:8px}.register-btn{display:inline-block;background:#fff;color:#ff6b6b;padding:16px 48px;border-radius:8px;text-decoration:none;font-size:18px;font-weight:700}</style></head><body><div class="container"><div class="badge">Special event</div><h1>{{eventTitle}}</h1><div class="date">{{eventDate}} {{eventTime}}</div><div class="description">{{description}}</div><div class="highlights"><div class="highlight">{{benefit1}}</div><div class="highlight">{{benefit2}}</div><div class="highlight">{{benefit3}}</div></div><a href="#register" class="register-btn">Register now</a></div></body></html>`,
		},
		{
			ID:          "tpl_free_trial_001",
			Name:        "Free Trial Signup",
			Description: strPtr("Conversion-focused page for free trial lesson signups"),
			Body:        `<!DOCTYPE html><html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>Free Trial</title><style>body{font-family:system-ui;margin:0;background:#f3f4f6}.hero{background:linear-gradient(135deg,#10b981 0%,#059669 100%);color:#fff;padding:80px 20px;text-align:center}.urgency{background:#fbbf24;color:#92400e;display:inline-block;padding:8px 20px;border-radius:20px;font-weight:700;margin-bottom:20px}h1{font-size:48px;margin-bottom:16px}.subtitle{font-size:24px;opacity:.9}.container{max-width:1000px;margin:-60px auto 0;position:relative;padding:0 20px}.benefits{display:grid;grid-template-columns:repeat(auto-fit,minmax(250px,1fr));gap:20px;margin-bottom:40px}.benefit-card{background:#fff;padding:30px;border-radius:12px;box-shadow:0 4px 12px rgba(0,0,0,.1)}.benefit-title{font-size:18px;font-weight:700;margin-bottom:8px}.benefit-desc{color:#6b7280}.cta-section{background:#fff;padding:40px;border-radius:12px;text-align:center}.cta-button{display:inline-block;background:linear-gradient(135deg,#10b981 0%,#059669 100%);color:#fff;padding:20px 60px;border-radius:8px;text-decoration:none;font-size:20px;font-weight:700}</style></head><body><div class="hero"><div class="urgency">This week only</div><h1>Try your first lesson free</h1><div class="subtitle">{{subtitle}}</div></div><div class="container"><div class="benefits"><div class="benefit-card"><div class="benefit-title">First lesson free</div><div class="benefit-desc">{{benefit1}}</div></div><div class="benefit-card"><div class="benefit-title">Personal assessment</div><div class="benefit-desc">{{benefit2}}</div></div><div class="benefit-card"><div class="benefit-title">Special discount</div><div class="benefit-desc">{{benefit3}}</div></div></div><div class="cta-section"><a href="#form" class="cta-button">Sign up for a free trial</a></div></div></body></html>`,
		},
		{
			ID:          "tpl_community_001",
			Name:        "Parent Community",
			Description: strPtr("Community page for parent communication and participation"),
			Body:        `<!DOCTYPE html><html><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1"><title>Parent Community</title><style>body{font-family:system-ui;margin:0;background:#f9fafb}.header{background:linear-gradient(135deg,#14b8a6 0%,#0891b2 100%);color:#fff;padding:60px 20px;text-align:center}h1{font-size:42px;margin-bottom:16px}.tagline{font-size:20px;opacity:.9}.container{max-width:1200px;margin:0 auto;padding:60px 20px}.intro{text-align:center;max-width:800px;margin:0 auto 60px;font-size:18px;line-height:1.8;color:#4b5563}.features{display:grid;grid-template-columns:repeat(auto-fit,minmax(280px,1fr));gap:30px}.feature{background:#fff;padding:30px;border-radius:12px;border-top:4px solid #14b8a6}.feature-title{font-size:20px;font-weight:700;margin-bottom:12px}.feature-desc{color:#6b7280;line-height:1.6}.join-button{display:inline-block;background:linear-gradient(135deg,#14b8a6 0%,#0891b2 100%);color:#fff;padding:16px 48px;border-radius:8px;text-decoration:none;font-size:18px;font-weight:700;margin-top:40px}</style></head><body><div class="header"><h1>{{communityName}}</h1><div class="tagline">{{tagline}}</div></div><div class="container"><div class="intro">{{introText}}</div><div class="features"><div class="feature"><div class="feature-title">Open discussion</div><div class="feature-desc">{{feature1}}</div></div><div class="feature"><div class="feature-title">Learning resources</div><div class="feature-desc">{{feature2}}</div></div><div class="feature"><div class="feature-title">Shared calendar</div><div class="feature-desc">{{feature3}}</div></div><div class="feature"><div class="feature-title">Consultation booking</div><div class="feature-desc">{{feature4}}</div></div></div><div style="text-align:center"><a href="#join" class="join-button">Join the community</a></div></div></body></html>`,
		},
	}
}

func strPtr(s string) *string {
	return &s
}
