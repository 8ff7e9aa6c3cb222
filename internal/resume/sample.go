package resume

// SampleRecord returns a complete demo resume used for demos and by the
// test suite.
func SampleRecord() *Record {
	return &Record{
		ContactInfo: ContactInfo{
			Name:     "John Doe",
			Email:    "john.doe@example.com",
			Phone:    "(555) 123-4567",
			Location: "San Francisco, CA",
			LinkedIn: "linkedin.com/in/johndoe",
		},
		TargetRole: "Senior Software Engineer",
		ProfessionalSummary: "Experienced software engineer with 5+ years of expertise in " +
			"full-stack development and cloud architecture. Strong background in designing " +
			"scalable systems and leading development teams.",
		WorkExperience: []ExperienceEntry{
			{
				JobTitle: "Senior Software Engineer",
				Company:  "Tech Innovations Inc",
				Dates:    "2020 - Present",
				Location: "San Francisco, CA",
				Achievements: []string{
					"Led migration to microservices architecture, reducing system latency by 40%",
					"Implemented CI/CD pipeline that decreased deployment time by 65%",
				},
			},
		},
		Education: []EducationEntry{
			{
				Degree:      "Master of Science in Computer Science",
				Institution: "Stanford University",
				Year:        "2018",
			},
		},
		Skills: Skills{
			Categories: map[string][]string{
				"Technical": {"Python", "JavaScript", "React", "Node.js", "AWS"},
				"Soft":      {"Team Leadership", "Communication"},
			},
			CategoryOrder: []string{"Technical", "Soft"},
		},
		Projects: []ProjectEntry{
			{
				Name:         "E-commerce Platform",
				Description:  "Developed a full-stack e-commerce solution with payment integration",
				Technologies: []string{"React", "Node.js", "MongoDB"},
			},
		},
		Certifications: []string{
			"AWS Certified Solutions Architect - Associate",
		},
	}
}
