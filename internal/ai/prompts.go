package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	Optimize      string
	CoverLetter   string
	Analyze       string
	InterviewPrep string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	Optimize           string
	CoverLetter        string
	AnalyzeResume      string
	AnalyzeCoverLetter string
	InterviewPrep      string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	Optimize: `You are an expert resume writer with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the source material
- Maintain professional integrity while optimizing for impact
- Preserve the structure of the source data exactly`,

	CoverLetter: `You are an expert career coach who writes compelling, honest cover letters. Your principles are:

- Only reference skills and experience actually present in the resume
- Write in a professional but approachable tone
- Keep letters concise and focused on the target role`,

	Analyze: `You are an expert in Applicant Tracking Systems (ATS) and resume screening software. Your expertise includes:

- Keyword extraction and matching against job descriptions
- Formatting constraints of automated resume parsers
- Content patterns that improve or hurt automated scoring`,

	InterviewPrep: `You are an experienced technical interviewer and hiring manager. You know:

- What interviewers actually ask for a given role and seniority
- How strong candidates structure their answers
- Which questions candidates should ask to evaluate the employer`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	Optimize: `Transform this resume data into a professionally optimized resume for the target role.
Rephrase all content to be more impactful and achievement-oriented while maintaining accuracy.

RESUME DATA:
%s

TARGET ROLE:
%s

JOB DESCRIPTION:
%s

INSTRUCTIONS:
1. Rephrase all content to be more professional and impactful
2. Focus on quantifiable achievements for work experience
3. Use industry-standard terminology
4. Maintain the original structure and information
5. Output should be valid JSON with the same structure as input
6. Do not add any new sections or information that wasn't in the original
7. Do not include the job title in the resume content

OUTPUT ONLY THE JSON:`,

	CoverLetter: `Write a professional cover letter for the candidate applying to %s.

RESUME DATA:
%s

JOB DESCRIPTION:
%s

INSTRUCTIONS:
1. Address to "Hiring Manager" if name is unknown
2. First paragraph should express interest in the position
3. Middle paragraphs should highlight relevant qualifications
4. Closing paragraph should express enthusiasm and request for interview
5. Keep it concise (3-4 paragraphs total)
6. Use professional but approachable tone
7. Only include one "Sincerely" closing at the end
8. Do not include any contact information in the body text

COVER LETTER:`,

	AnalyzeResume: `Analyze this resume for ATS (Applicant Tracking System) compliance against the job description.
Provide specific recommendations to improve ATS scoring.

RESUME DATA:
%s

JOB DESCRIPTION:
%s

FORMAT YOUR RESPONSE WITH THESE SECTIONS:
1. Keyword Optimization
2. Formatting Suggestions
3. Content Improvements`,

	AnalyzeCoverLetter: `Analyze this cover letter for ATS (Applicant Tracking System) compliance against the job description.
Provide specific recommendations to improve ATS scoring.

COVER LETTER:
%s

JOB DESCRIPTION:
%s

FORMAT YOUR RESPONSE WITH THESE SECTIONS:
1. Keyword Optimization
2. Formatting Suggestions
3. Content Improvements`,

	InterviewPrep: `Generate interview preparation materials based on this resume and job description.

RESUME DATA:
%s

JOB DESCRIPTION:
%s

INCLUDE THESE SECTIONS:
1. 10 Likely Technical Questions with Sample Answers
2. 5 Behavioral Questions with Sample Answers
3. Questions to Ask the Interviewer`,
}
